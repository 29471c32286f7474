package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jdubz/resume-pipeline/internal/services"
)

// Config flag names
const (
	flagStopCompanies = "companies"
	flagStopKeywords  = "keywords"
	flagStopDomains   = "domains"

	flagSettingsMaxRetries = "max-retries"
	flagSettingsRetryDelay = "retry-delay"
	flagSettingsTimeout    = "processing-timeout"
)

// GetConfigCmd returns the config command group
func GetConfigCmd() *cobra.Command {
	return configCmd
}

func init() {
	configCmd.AddCommand(getStopListCmd)
	configCmd.AddCommand(setStopListCmd)
	configCmd.AddCommand(getSettingsCmd)
	configCmd.AddCommand(setSettingsCmd)

	setStopListCmd.Flags().StringSlice(flagStopCompanies, nil, "Excluded company names")
	setStopListCmd.Flags().StringSlice(flagStopKeywords, nil, "Excluded URL keywords")
	setStopListCmd.Flags().StringSlice(flagStopDomains, nil, "Excluded domains")

	setSettingsCmd.Flags().Int(flagSettingsMaxRetries, -1, "Maximum retry attempts per item")
	setSettingsCmd.Flags().Int(flagSettingsRetryDelay, -1, "Delay between retries in seconds")
	setSettingsCmd.Flags().Int(flagSettingsTimeout, -1, "Processing timeout in seconds")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the stop list and queue settings",
}

var getStopListCmd = &cobra.Command{
	Use:   "stop-list",
	Short: "Show the current stop list",
	RunE: func(_ *cobra.Command, _ []string) error {
		list, err := apiClient.GetStopList(context.Background())
		if err != nil {
			return fmt.Errorf("error getting stop list: %w", err)
		}
		return printJSON(list)
	},
}

var setStopListCmd = &cobra.Command{
	Use:   "set-stop-list",
	Short: "Replace stop list fields; omitted flags are left unchanged",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var update services.StopListUpdate
		if cmd.Flags().Changed(flagStopCompanies) {
			companies, _ := cmd.Flags().GetStringSlice(flagStopCompanies)
			update.ExcludedCompanies = &companies
		}
		if cmd.Flags().Changed(flagStopKeywords) {
			keywords, _ := cmd.Flags().GetStringSlice(flagStopKeywords)
			update.ExcludedKeywords = &keywords
		}
		if cmd.Flags().Changed(flagStopDomains) {
			domains, _ := cmd.Flags().GetStringSlice(flagStopDomains)
			update.ExcludedDomains = &domains
		}

		list, err := apiClient.UpdateStopList(context.Background(), update)
		if err != nil {
			return fmt.Errorf("error updating stop list: %w", err)
		}
		return printJSON(list)
	},
}

var getSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current queue settings",
	RunE: func(_ *cobra.Command, _ []string) error {
		settings, err := apiClient.GetQueueSettings(context.Background())
		if err != nil {
			return fmt.Errorf("error getting queue settings: %w", err)
		}
		return printJSON(settings)
	},
}

var setSettingsCmd = &cobra.Command{
	Use:   "set-settings",
	Short: "Update queue settings; omitted flags are left unchanged",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var update services.QueueSettingsUpdate
		if cmd.Flags().Changed(flagSettingsMaxRetries) {
			v, _ := cmd.Flags().GetInt(flagSettingsMaxRetries)
			update.MaxRetries = &v
		}
		if cmd.Flags().Changed(flagSettingsRetryDelay) {
			v, _ := cmd.Flags().GetInt(flagSettingsRetryDelay)
			update.RetryDelaySeconds = &v
		}
		if cmd.Flags().Changed(flagSettingsTimeout) {
			v, _ := cmd.Flags().GetInt(flagSettingsTimeout)
			update.ProcessingTimeoutSeconds = &v
		}

		settings, err := apiClient.UpdateQueueSettings(context.Background(), update)
		if err != nil {
			return fmt.Errorf("error updating queue settings: %w", err)
		}
		return printJSON(settings)
	},
}
