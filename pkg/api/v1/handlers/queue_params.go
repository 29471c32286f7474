package handlers

import (
	"fmt"
	"strings"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// QueueSubmitJobParams defines the parameters for submitting a job
type QueueSubmitJobParams struct {
	URL          string  `json:"url"`
	CompanyName  string  `json:"company_name"`
	SubmitterID  *string `json:"submitter_id,omitempty"`
	Source       string  `json:"source,omitempty"`
	GenerationID string  `json:"generation_id,omitempty"`
}

// Validate validates the parameters for submitting a job
func (p QueueSubmitJobParams) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgQueueURLRequired))
	}
	if p.CompanyName == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgQueueCompanyRequired))
	}
	return nil
}

// QueueSubmitScrapeParams defines the parameters for submitting a scrape
type QueueSubmitScrapeParams struct {
	SubmitterID string                   `json:"submitter_id"`
	Config      *models.ScrapeConfigData `json:"config,omitempty"`
	Source      string                   `json:"source,omitempty"`
}

// Validate validates the parameters for submitting a scrape
func (p QueueSubmitScrapeParams) Validate() error {
	if p.SubmitterID == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgQueueSubmitterRequired))
	}
	return nil
}

// QueueCheckParams defines the parameters for the pre-submission check
type QueueCheckParams struct {
	URL         string `json:"url"`
	CompanyName string `json:"company_name,omitempty"`
}

// Validate validates the parameters for the pre-submission check
func (p QueueCheckParams) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgQueueURLRequired))
	}
	return nil
}
