package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
)

// Queue flag names
const (
	flagQueueID        = "id"
	flagQueueURL       = "url"
	flagQueueCompany   = "company"
	flagQueueSubmitter = "submitter"
	flagQueueSource    = "source"
	flagQueueStatus    = "status"
	flagQueuePage      = "page"
)

// queueItemOutput represents the filtered output for a queue item
type queueItemOutput struct {
	ID           uint   `json:"id"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	URL          string `json:"url,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	RetryCount   int    `json:"retry_count"`
	MaxRetries   int    `json:"max_retries"`
	Result       string `json:"result,omitempty"`
	ErrorDetails string `json:"error,omitempty"`
	GenerationID string `json:"generation_id,omitempty"`
	Created      string `json:"created_at"`
}

func queueItemToOutput(item models.QueueItem) queueItemOutput {
	return queueItemOutput{
		ID:           item.ID,
		Kind:         string(item.Kind),
		Status:       item.Status.String(),
		URL:          item.URL,
		CompanyName:  item.CompanyName,
		RetryCount:   item.RetryCount,
		MaxRetries:   item.MaxRetries,
		Result:       item.ResultMessage,
		ErrorDetails: item.ErrorDetails,
		GenerationID: item.GenerationID,
		Created:      item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GetQueueCmd returns the queue command group
func GetQueueCmd() *cobra.Command {
	return queueCmd
}

func init() {
	queueCmd.AddCommand(submitJobCmd)
	queueCmd.AddCommand(submitScrapeCmd)
	queueCmd.AddCommand(listQueueCmd)
	queueCmd.AddCommand(getQueueItemCmd)
	queueCmd.AddCommand(queueStatsCmd)
	queueCmd.AddCommand(checkQueueCmd)
	queueCmd.AddCommand(retryQueueItemCmd)
	queueCmd.AddCommand(deleteQueueItemCmd)

	// Add flags for submit
	submitJobCmd.Flags().StringP(flagQueueURL, "u", "", "Job posting URL")
	submitJobCmd.Flags().StringP(flagQueueCompany, "c", "", "Company name")
	submitJobCmd.Flags().String(flagQueueSubmitter, "", "Submitter identity")
	submitJobCmd.Flags().String(flagQueueSource, "cli", "Submission source")
	_ = submitJobCmd.MarkFlagRequired(flagQueueURL)
	_ = submitJobCmd.MarkFlagRequired(flagQueueCompany)

	// Add flags for submit-scrape
	submitScrapeCmd.Flags().String(flagQueueSubmitter, "", "Submitter identity")
	submitScrapeCmd.Flags().String(flagQueueSource, "cli", "Submission source")
	_ = submitScrapeCmd.MarkFlagRequired(flagQueueSubmitter)

	// Add flags for list
	listQueueCmd.Flags().StringP(flagQueueStatus, "t", "", "Filter by status (pending, processing, success, failed, skipped, filtered)")
	listQueueCmd.Flags().IntP(flagQueuePage, "g", 1, "Page number for pagination")

	// Add flags for check
	checkQueueCmd.Flags().StringP(flagQueueURL, "u", "", "Job posting URL")
	checkQueueCmd.Flags().StringP(flagQueueCompany, "c", "", "Company name")
	_ = checkQueueCmd.MarkFlagRequired(flagQueueURL)

	// Add flags for get, retry and delete
	for _, cmd := range []*cobra.Command{getQueueItemCmd, retryQueueItemCmd, deleteQueueItemCmd} {
		cmd.Flags().UintP(flagQueueID, "i", 0, "Queue item ID")
		_ = cmd.MarkFlagRequired(flagQueueID)
	}
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the job intake queue",
}

var submitJobCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a job application to the queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobURL, _ := cmd.Flags().GetString(flagQueueURL)
		company, _ := cmd.Flags().GetString(flagQueueCompany)
		submitter, _ := cmd.Flags().GetString(flagQueueSubmitter)
		source, _ := cmd.Flags().GetString(flagQueueSource)

		params := handlers.QueueSubmitJobParams{
			URL:         jobURL,
			CompanyName: company,
			Source:      source,
		}
		if submitter != "" {
			params.SubmitterID = &submitter
		}

		item, err := apiClient.SubmitJob(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error submitting job: %w", err)
		}
		return printJSON(queueItemToOutput(item))
	},
}

var submitScrapeCmd = &cobra.Command{
	Use:   "submit-scrape",
	Short: "Submit a scrape request to the queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		submitter, _ := cmd.Flags().GetString(flagQueueSubmitter)
		source, _ := cmd.Flags().GetString(flagQueueSource)

		item, err := apiClient.SubmitScrape(context.Background(), handlers.QueueSubmitScrapeParams{
			SubmitterID: submitter,
			Source:      source,
		})
		if err != nil {
			return fmt.Errorf("error submitting scrape: %w", err)
		}
		return printJSON(queueItemToOutput(item))
	},
}

var listQueueCmd = &cobra.Command{
	Use:   "list",
	Short: "List queue items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, _ := cmd.Flags().GetInt(flagQueuePage)
		if page < 1 {
			page = 1
		}

		opts := &models.ListOptions{
			Limit:  models.DefaultLimit,
			Offset: (page - 1) * models.DefaultLimit,
		}
		if statusStr, _ := cmd.Flags().GetString(flagQueueStatus); statusStr != "" {
			status, err := models.ParseQueueItemStatus(statusStr)
			if err != nil {
				return err
			}
			opts.Status = &status
		}

		items, err := apiClient.GetQueueItems(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("error listing queue items: %w", err)
		}

		output := make([]queueItemOutput, len(items))
		for i, item := range items {
			output[i] = queueItemToOutput(item)
		}
		return printJSON(output)
	},
}

var getQueueItemCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific queue item by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagQueueID)
		if err != nil {
			return fmt.Errorf("error getting queue item ID flag: %w", err)
		}
		if id == 0 {
			return fmt.Errorf("queue item ID must be a positive number")
		}

		item, err := apiClient.GetQueueItem(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting queue item: %w", err)
		}
		return printJSON(queueItemToOutput(item))
	},
}

var queueStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show queue item counts per status",
	RunE: func(_ *cobra.Command, _ []string) error {
		stats, err := apiClient.GetQueueStats(context.Background())
		if err != nil {
			return fmt.Errorf("error getting queue stats: %w", err)
		}
		return printJSON(stats)
	},
}

var checkQueueCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the pre-submission check for a job URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobURL, _ := cmd.Flags().GetString(flagQueueURL)
		company, _ := cmd.Flags().GetString(flagQueueCompany)

		check, err := apiClient.CheckSubmission(context.Background(), jobURL, company)
		if err != nil {
			return fmt.Errorf("error checking submission: %w", err)
		}
		return printJSON(check)
	},
}

var retryQueueItemCmd = &cobra.Command{
	Use:   "retry",
	Short: "Reset a failed queue item back to pending",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint(flagQueueID)
		if id == 0 {
			return fmt.Errorf("queue item ID must be a positive number")
		}

		resp, err := apiClient.RetryQueueItem(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error retrying queue item: %w", err)
		}
		return printJSON(resp)
	},
}

var deleteQueueItemCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete a queue item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint(flagQueueID)
		if id == 0 {
			return fmt.Errorf("queue item ID must be a positive number")
		}

		resp, err := apiClient.DeleteQueueItem(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error deleting queue item: %w", err)
		}
		return printJSON(resp)
	},
}
