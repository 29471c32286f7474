package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jdubz/resume-pipeline/internal/services"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/client"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
)

// Generation flag names
const (
	flagGenKind      = "kind"
	flagGenProvider  = "provider"
	flagGenRole      = "role"
	flagGenCompany   = "company"
	flagGenWebsite   = "website"
	flagGenJobURL    = "job-url"
	flagGenJobText   = "job-text"
	flagGenEmphasize = "emphasize"
	flagGenRequestID = "request-id"
)

// GetGenerateCmd returns the generate command group
func GetGenerateCmd() *cobra.Command {
	return generateCmd
}

func init() {
	generateCmd.AddCommand(startGenerationCmd)
	generateCmd.AddCommand(runGenerationCmd)
	generateCmd.AddCommand(stepGenerationCmd)
	generateCmd.AddCommand(generationStatusCmd)

	for _, cmd := range []*cobra.Command{startGenerationCmd, runGenerationCmd} {
		cmd.Flags().StringP(flagGenKind, "k", "both", "Generation kind (resume, coverLetter, both)")
		cmd.Flags().String(flagGenProvider, "", "Content provider override")
		cmd.Flags().StringP(flagGenRole, "r", "", "Target role")
		cmd.Flags().StringP(flagGenCompany, "c", "", "Target company")
		cmd.Flags().String(flagGenWebsite, "", "Company website")
		cmd.Flags().StringP(flagGenJobURL, "u", "", "Job description URL")
		cmd.Flags().String(flagGenJobText, "", "Job description text")
		cmd.Flags().StringSliceP(flagGenEmphasize, "e", nil, "Skills or experiences to emphasize")
		_ = cmd.MarkFlagRequired(flagGenRole)
		_ = cmd.MarkFlagRequired(flagGenCompany)
	}

	for _, cmd := range []*cobra.Command{stepGenerationCmd, generationStatusCmd} {
		cmd.Flags().StringP(flagGenRequestID, "i", "", "Generation request ID")
		_ = cmd.MarkFlagRequired(flagGenRequestID)
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Manage document generation requests",
}

// startParamsFromFlags builds the start params shared by start and run
func startParamsFromFlags(cmd *cobra.Command) handlers.GenerationStartParams {
	kind, _ := cmd.Flags().GetString(flagGenKind)
	provider, _ := cmd.Flags().GetString(flagGenProvider)
	role, _ := cmd.Flags().GetString(flagGenRole)
	company, _ := cmd.Flags().GetString(flagGenCompany)
	website, _ := cmd.Flags().GetString(flagGenWebsite)
	jobURL, _ := cmd.Flags().GetString(flagGenJobURL)
	jobText, _ := cmd.Flags().GetString(flagGenJobText)
	emphasize, _ := cmd.Flags().GetStringSlice(flagGenEmphasize)

	return handlers.GenerationStartParams{
		Kind:     kind,
		Provider: provider,
		Job: services.GenerationJob{
			Role:               role,
			Company:            company,
			CompanyWebsite:     website,
			JobDescriptionURL:  jobURL,
			JobDescriptionText: jobText,
		},
		Preferences: services.GenerationPreferences{
			Emphasize: emphasize,
		},
	}
}

var startGenerationCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a generation request without executing any steps",
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := apiClient.StartGeneration(context.Background(), startParamsFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("error starting generation: %w", err)
		}
		return printJSON(resp)
	},
}

var runGenerationCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a generation request and drive it to completion",
	RunE: func(cmd *cobra.Command, _ []string) error {
		exec, err := client.RunGeneration(cmd.Context(), apiClient, startParamsFromFlags(cmd), func(exec services.StepExecution) {
			fmt.Printf("status=%s", exec.Status)
			if exec.NextStep != "" {
				fmt.Printf(" next=%s", exec.NextStep)
			}
			if exec.ResumeURL != "" {
				fmt.Printf(" resume_url=%s", exec.ResumeURL)
			}
			if exec.CoverLetterURL != "" {
				fmt.Printf(" cover_letter_url=%s", exec.CoverLetterURL)
			}
			fmt.Println()
		})
		if err != nil {
			return fmt.Errorf("error running generation: %w", err)
		}
		return printJSON(exec)
	},
}

var stepGenerationCmd = &cobra.Command{
	Use:   "step",
	Short: "Execute the next pending step of a generation request",
	RunE: func(cmd *cobra.Command, _ []string) error {
		requestID, _ := cmd.Flags().GetString(flagGenRequestID)

		exec, err := apiClient.ExecuteStep(context.Background(), requestID)
		if err != nil {
			return fmt.Errorf("error executing step: %w", err)
		}
		return printJSON(exec)
	},
}

var generationStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a generation request and its step states",
	RunE: func(cmd *cobra.Command, _ []string) error {
		requestID, _ := cmd.Flags().GetString(flagGenRequestID)

		req, err := apiClient.GetGeneration(context.Background(), requestID)
		if err != nil {
			return fmt.Errorf("error getting generation: %w", err)
		}
		return printJSON(req)
	},
}
