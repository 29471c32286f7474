package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Queue settings defaults. These are materialized in exactly one place
// (DefaultQueueSettings); everything else consumes the loaded settings.
const (
	// DefaultMaxRetries is the default number of times a failed item may be retried
	DefaultMaxRetries = 3
	// DefaultRetryDelaySeconds is the default delay between retries
	DefaultRetryDelaySeconds = 60
	// DefaultProcessingTimeoutSeconds is the advisory timeout after which a
	// processing item is considered stale
	DefaultProcessingTimeoutSeconds = 300
)

// QueueSettings holds the retry and timeout configuration for the intake queue.
// A single row is kept; a missing row yields the defaults.
type QueueSettings struct {
	gorm.Model
	MaxRetries               int `json:"max_retries" gorm:"not null"`
	RetryDelaySeconds        int `json:"retry_delay_seconds" gorm:"not null"`
	ProcessingTimeoutSeconds int `json:"processing_timeout_seconds" gorm:"not null"`
}

// DefaultQueueSettings returns settings populated with the hardcoded defaults
func DefaultQueueSettings() *QueueSettings {
	return &QueueSettings{
		MaxRetries:               DefaultMaxRetries,
		RetryDelaySeconds:        DefaultRetryDelaySeconds,
		ProcessingTimeoutSeconds: DefaultProcessingTimeoutSeconds,
	}
}

// ProcessingTimeout returns the advisory processing timeout as a duration
func (s *QueueSettings) ProcessingTimeout() time.Duration {
	return time.Duration(s.ProcessingTimeoutSeconds) * time.Second
}

// Validate ensures that the settings are usable
func (s *QueueSettings) Validate() error {
	if s.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if s.RetryDelaySeconds < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}
	if s.ProcessingTimeoutSeconds <= 0 {
		return fmt.Errorf("processing timeout must be positive")
	}
	return nil
}
