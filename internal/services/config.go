package services

import (
	"context"
	"fmt"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
	"github.com/Jdubz/resume-pipeline/internal/logger"
)

// Config serves the queue settings and stop list. Reads are non-critical:
// a storage failure yields the safe default instead of blocking submissions.
type Config struct {
	repo *repos.ConfigRepository
}

// NewConfigService creates a new instance of Config
func NewConfigService(repo *repos.ConfigRepository) *Config {
	return &Config{
		repo: repo,
	}
}

// withFallback runs a non-critical read and substitutes the fallback value
// on error, logging a warning. This is the single fail-open point for all
// settings, stop-list and existence probes.
func withFallback[T any](what string, fallback T, op func() (T, error)) T {
	value, err := op()
	if err != nil {
		logger.WarnWithFields("read failed, falling back to default", map[string]interface{}{
			"what":  what,
			"error": err.Error(),
		})
		return fallback
	}
	return value
}

// Settings returns the current queue settings, or the hardcoded defaults
// when the row is missing or unreadable
func (s *Config) Settings(ctx context.Context) *models.QueueSettings {
	return withFallback("queue settings", models.DefaultQueueSettings(), func() (*models.QueueSettings, error) {
		settings, err := s.repo.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		if settings == nil {
			return models.DefaultQueueSettings(), nil
		}
		return settings, nil
	})
}

// StopList returns the current stop list, or an empty list when the row is
// missing or unreadable
func (s *Config) StopList(ctx context.Context) *models.StopList {
	return withFallback("stop list", &models.StopList{}, func() (*models.StopList, error) {
		list, err := s.repo.GetStopList(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			return &models.StopList{}, nil
		}
		return list, nil
	})
}

// StopListUpdate carries a partial stop-list update; nil fields are left
// unchanged
type StopListUpdate struct {
	ExcludedCompanies *[]string `json:"excluded_companies,omitempty"`
	ExcludedKeywords  *[]string `json:"excluded_keywords,omitempty"`
	ExcludedDomains   *[]string `json:"excluded_domains,omitempty"`
}

// UpdateStopList merges the update into the stored stop list and stamps the
// editor identity. Unlike reads, a write failure propagates.
func (s *Config) UpdateStopList(ctx context.Context, update StopListUpdate, editor string) (*models.StopList, error) {
	list, err := s.repo.GetStopList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stop list: %w", err)
	}
	if list == nil {
		list = &models.StopList{}
	}

	if update.ExcludedCompanies != nil {
		list.ExcludedCompanies = *update.ExcludedCompanies
	}
	if update.ExcludedKeywords != nil {
		list.ExcludedKeywords = *update.ExcludedKeywords
	}
	if update.ExcludedDomains != nil {
		list.ExcludedDomains = *update.ExcludedDomains
	}
	list.UpdatedBy = editor

	if err := s.repo.SaveStopList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save stop list: %w", err)
	}
	return list, nil
}

// QueueSettingsUpdate carries a partial settings update; nil fields are left
// unchanged
type QueueSettingsUpdate struct {
	MaxRetries               *int `json:"max_retries,omitempty"`
	RetryDelaySeconds        *int `json:"retry_delay_seconds,omitempty"`
	ProcessingTimeoutSeconds *int `json:"processing_timeout_seconds,omitempty"`
}

// UpdateSettings merges the update into the stored settings, materializing
// defaults first when no row exists yet
func (s *Config) UpdateSettings(ctx context.Context, update QueueSettingsUpdate) (*models.QueueSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue settings: %w", err)
	}
	if settings == nil {
		settings = models.DefaultQueueSettings()
	}

	if update.MaxRetries != nil {
		settings.MaxRetries = *update.MaxRetries
	}
	if update.RetryDelaySeconds != nil {
		settings.RetryDelaySeconds = *update.RetryDelaySeconds
	}
	if update.ProcessingTimeoutSeconds != nil {
		settings.ProcessingTimeoutSeconds = *update.ProcessingTimeoutSeconds
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save queue settings: %w", err)
	}
	return settings, nil
}
