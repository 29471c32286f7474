// Package services implements the intake queue and the document-generation
// pipeline on top of the repositories.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
	"github.com/Jdubz/resume-pipeline/internal/logger"
)

// ErrNotLinked is returned when a queue item has no generation reference to resolve
var ErrNotLinked = errors.New("queue item has no linked generation request")

// SubmitJobParams are the inputs for submitting a tracked job application
type SubmitJobParams struct {
	URL         string  `json:"url"`
	CompanyName string  `json:"company_name"`
	SubmitterID *string `json:"submitter_id,omitempty"`
	Source      string  `json:"source,omitempty"`
	// GenerationID links the submission to documents generated out-of-band;
	// when present the item is created already succeeded.
	GenerationID string `json:"generation_id,omitempty"`
}

// SubmitScrapeParams are the inputs for submitting a scrape request
type SubmitScrapeParams struct {
	SubmitterID string                   `json:"submitter_id"`
	Config      *models.ScrapeConfigData `json:"config,omitempty"`
	Source      string                   `json:"source,omitempty"`
}

// QueueStats aggregates queue item counts per status
type QueueStats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Success    int64 `json:"success"`
	Failed     int64 `json:"failed"`
	Skipped    int64 `json:"skipped"`
	Filtered   int64 `json:"filtered"`
	Total      int64 `json:"total"`
}

// SubmissionCheck is the result of the caller-invoked pre-submission probe
type SubmissionCheck struct {
	Filter            FilterResult `json:"filter"`
	Duplicate         bool         `json:"duplicate"`
	ExistingRequestID string       `json:"existing_request_id,omitempty"`
}

// Queue handles queue item operations: admission, retries, deletion and
// statistics
type Queue struct {
	repo        *repos.QueueRepository
	generations *repos.GenerationRepository
	config      *Config
}

// NewQueueService creates a new instance of Queue
func NewQueueService(repo *repos.QueueRepository, generations *repos.GenerationRepository, config *Config) *Queue {
	return &Queue{
		repo:        repo,
		generations: generations,
		config:      config,
	}
}

// Submit creates a job queue item. Stop-list filtering is not enforced here;
// it is a caller-invoked pre-check via CheckSubmission. Items start pending
// with the retry budget copied from the current settings, unless a
// generation reference marks the work as already done.
func (s *Queue) Submit(ctx context.Context, params SubmitJobParams) (*models.QueueItem, error) {
	if params.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if params.CompanyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	settings := s.config.Settings(ctx)
	item := &models.QueueItem{
		Kind:        models.QueueItemKindJob,
		URL:         params.URL,
		CompanyName: params.CompanyName,
		SubmitterID: params.SubmitterID,
		Source:      params.Source,
		MaxRetries:  settings.MaxRetries,
	}

	if params.GenerationID != "" {
		now := time.Now()
		item.Status = models.QueueItemStatusSuccess
		item.GenerationID = params.GenerationID
		item.ResultMessage = "documents were generated before submission"
		item.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create queue item: %w", err)
	}
	return item, nil
}

// SubmitScrape creates a scrape queue item with defaulted scrape config
func (s *Queue) SubmitScrape(ctx context.Context, params SubmitScrapeParams) (*models.QueueItem, error) {
	if params.SubmitterID == "" {
		return nil, fmt.Errorf("submitter id is required")
	}

	cfg := models.ScrapeConfigData{
		TargetMatches: models.DefaultScrapeTargetMatches,
		MaxSources:    models.DefaultScrapeMaxSources,
	}
	if params.Config != nil {
		if params.Config.TargetMatches > 0 {
			cfg.TargetMatches = params.Config.TargetMatches
		}
		if params.Config.MaxSources > 0 {
			cfg.MaxSources = params.Config.MaxSources
		}
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scrape config: %w", err)
	}

	settings := s.config.Settings(ctx)
	item := &models.QueueItem{
		Kind:         models.QueueItemKindScrape,
		SubmitterID:  &params.SubmitterID,
		Source:       params.Source,
		MaxRetries:   settings.MaxRetries,
		ScrapeConfig: cfgJSON,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create scrape queue item: %w", err)
	}
	return item, nil
}

// Get retrieves a queue item by ID
func (s *Queue) Get(ctx context.Context, id uint) (*models.QueueItem, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves queue items with pagination
func (s *Queue) List(ctx context.Context, opts *models.ListOptions) ([]models.QueueItem, error) {
	return s.repo.List(ctx, opts)
}

// CheckDuplicate reports whether a queue item already exists for the URL.
// Fails open: a storage error never blocks a legitimate submission.
func (s *Queue) CheckDuplicate(ctx context.Context, url string) bool {
	return withFallback("queue duplicate check", false, func() (bool, error) {
		return s.repo.ExistsByURL(ctx, url)
	})
}

// CheckExisting reports the request ID of a completed generation for the
// URL, or empty if none. Fails open to empty on storage errors.
func (s *Queue) CheckExisting(ctx context.Context, url string) string {
	return withFallback("existing generation check", "", func() (string, error) {
		req, err := s.generations.FindCompletedByJobURL(ctx, url)
		if err != nil {
			return "", err
		}
		if req == nil {
			return "", nil
		}
		return req.RequestID, nil
	})
}

// HasPendingScrape reports whether the submitter already has an active
// scrape; used to rate-limit one scrape per submitter. Fails open to false.
func (s *Queue) HasPendingScrape(ctx context.Context, submitterID string) bool {
	return withFallback("pending scrape check", false, func() (bool, error) {
		return s.repo.HasPendingScrape(ctx, submitterID)
	})
}

// CheckSubmission runs the caller-invoked pre-submission probes: stop-list
// filter, duplicate check and existing-generation lookup
func (s *Queue) CheckSubmission(ctx context.Context, url, companyName string) SubmissionCheck {
	return SubmissionCheck{
		Filter:            CheckStopList(url, companyName, s.config.StopList(ctx)),
		Duplicate:         s.CheckDuplicate(ctx, url),
		ExistingRequestID: s.CheckExisting(ctx, url),
	}
}

// Retry resets a failed queue item back to pending, clearing its error and
// processing timestamps. Returns false for missing items and for items in
// any status other than failed; those cases are logged, not errors.
func (s *Queue) Retry(ctx context.Context, id uint) (bool, error) {
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warnf("retry requested for missing queue item %d", id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load queue item: %w", err)
	}
	if item.Status != models.QueueItemStatusFailed {
		logger.Infof("retry requested for queue item %d in status %s, ignoring", id, item.Status)
		return false, nil
	}

	return s.repo.ResetForRetry(ctx, id)
}

// Delete removes a queue item permanently. Returns false if the item does
// not exist; repeated deletes are safe no-ops.
func (s *Queue) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete queue item: %w", err)
	}
	if !deleted {
		logger.Warnf("delete requested for missing queue item %d", id)
	}
	return deleted, nil
}

// Stats aggregates queue item counts per status. The queue is expected to
// stay small, so a full-collection aggregate is acceptable.
func (s *Queue) Stats(ctx context.Context) (*QueueStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate queue stats: %w", err)
	}

	stats := &QueueStats{
		Pending:    counts[models.QueueItemStatusPending],
		Processing: counts[models.QueueItemStatusProcessing],
		Success:    counts[models.QueueItemStatusSuccess],
		Failed:     counts[models.QueueItemStatusFailed],
		Skipped:    counts[models.QueueItemStatusSkipped],
		Filtered:   counts[models.QueueItemStatusFiltered],
	}
	stats.Total = stats.Pending + stats.Processing + stats.Success + stats.Failed + stats.Skipped + stats.Filtered
	return stats, nil
}

// ResolveGeneration resolves the soft generation reference on a queue item.
// Returns ErrNotLinked when the item carries no reference.
func (s *Queue) ResolveGeneration(ctx context.Context, item *models.QueueItem) (*models.GenerationRequest, error) {
	if item.GenerationID == "" {
		return nil, ErrNotLinked
	}
	return s.generations.GetByRequestID(ctx, item.GenerationID)
}

// RecoverStale requeues processing items whose advisory processing timeout
// has elapsed. Items with retry budget left go back to pending with the
// retry count incremented; exhausted items are marked failed.
func (s *Queue) RecoverStale(ctx context.Context) (int, error) {
	settings := s.config.Settings(ctx)
	cutoff := time.Now().Add(-settings.ProcessingTimeout())

	items, err := s.repo.ListStaleProcessing(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale queue items: %w", err)
	}

	recovered := 0
	for i := range items {
		item := &items[i]
		if item.RetryCount < item.MaxRetries {
			item.RetryCount++
			item.Status = models.QueueItemStatusPending
			item.ProcessedAt = nil
			item.ErrorDetails = ""
		} else {
			now := time.Now()
			item.Status = models.QueueItemStatusFailed
			item.ErrorDetails = "processing timed out"
			item.CompletedAt = &now
		}
		if err := s.repo.Update(ctx, item); err != nil {
			logger.Errorf("failed to recover stale queue item %d: %v", item.ID, err)
			continue
		}
		recovered++
	}
	return recovered, nil
}
