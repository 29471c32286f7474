package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for the queue item model
const (
	// QueueItemStatusField is the field name for queue item status
	QueueItemStatusField = "status"
	// QueueItemURLField is the field name for the queue item target URL
	QueueItemURLField = "url"
)

// QueueItemKind identifies the type of work a queue item represents
type QueueItemKind string

// Queue item kind constants
const (
	// QueueItemKindJob is a tracked job application submission
	QueueItemKindJob QueueItemKind = "job"
	// QueueItemKindScrape is a request to scrape job postings for a submitter
	QueueItemKindScrape QueueItemKind = "scrape"
)

// QueueItemStatus represents the current state of a queue item
type QueueItemStatus string

// Queue item status constants
const (
	// QueueItemStatusPending indicates the item is waiting to be processed
	QueueItemStatusPending QueueItemStatus = "pending"
	// QueueItemStatusProcessing indicates the item is currently being processed
	QueueItemStatusProcessing QueueItemStatus = "processing"
	// QueueItemStatusSuccess indicates the item was processed successfully
	QueueItemStatusSuccess QueueItemStatus = "success"
	// QueueItemStatusFailed indicates processing failed
	QueueItemStatusFailed QueueItemStatus = "failed"
	// QueueItemStatusSkipped indicates the item was intentionally not processed
	QueueItemStatusSkipped QueueItemStatus = "skipped"
	// QueueItemStatusFiltered indicates the item matched the stop list
	QueueItemStatusFiltered QueueItemStatus = "filtered"
)

// queueItemStatuses lists every valid status for parsing
var queueItemStatuses = []QueueItemStatus{
	QueueItemStatusPending,
	QueueItemStatusProcessing,
	QueueItemStatusSuccess,
	QueueItemStatusFailed,
	QueueItemStatusSkipped,
	QueueItemStatusFiltered,
}

// String returns the string representation of the queue item status
func (s QueueItemStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further processing will happen for this status
func (s QueueItemStatus) IsTerminal() bool {
	switch s {
	case QueueItemStatusSuccess, QueueItemStatusFailed, QueueItemStatusSkipped, QueueItemStatusFiltered:
		return true
	default:
		return false
	}
}

// ParseQueueItemStatus converts a string to a QueueItemStatus type
func ParseQueueItemStatus(str string) (QueueItemStatus, error) {
	for _, status := range queueItemStatuses {
		if str == string(status) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid queue item status: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for QueueItemStatus
func (s *QueueItemStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseQueueItemStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// MarshalJSON implements json.Marshaler for QueueItemStatus
func (s QueueItemStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// QueueItem represents one submission awaiting processing in the intake queue
type QueueItem struct {
	gorm.Model
	Kind          QueueItemKind   `json:"kind" gorm:"not null;index"`
	Status        QueueItemStatus `json:"status" gorm:"not null;index"`
	URL           string          `json:"url,omitempty" gorm:"index"`
	CompanyName   string          `json:"company_name,omitempty"`
	SubmitterID   *string         `json:"submitter_id,omitempty" gorm:"index"`
	Source        string          `json:"source,omitempty"`
	RetryCount    int             `json:"retry_count" gorm:"not null;default:0"`
	MaxRetries    int             `json:"max_retries" gorm:"not null;default:3"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	ResultMessage string          `json:"result_message,omitempty" gorm:"type:text"`
	ErrorDetails  string          `json:"error_details,omitempty" gorm:"type:text"`
	// GenerationID is a soft reference to GenerationRequest.RequestID; it is
	// resolved by the caller, never enforced by the database.
	GenerationID string          `json:"generation_id,omitempty" gorm:"index"`
	ScrapeConfig json.RawMessage `json:"scrape_config,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time       `json:"created_at" gorm:"index"`
}

// ScrapeConfigData holds the tunables for a scrape queue item
type ScrapeConfigData struct {
	TargetMatches int `json:"target_matches"`
	MaxSources    int `json:"max_sources"`
}

// Scrape config defaults
const (
	// DefaultScrapeTargetMatches is the default number of matches a scrape aims for
	DefaultScrapeTargetMatches = 5
	// DefaultScrapeMaxSources is the default cap on sources a scrape consults
	DefaultScrapeMaxSources = 20
)

// Validate ensures that the queue item data is valid
func (q *QueueItem) Validate() error {
	if q.Kind != QueueItemKindJob && q.Kind != QueueItemKindScrape {
		return fmt.Errorf("invalid queue item kind: %s", q.Kind)
	}
	if q.Kind == QueueItemKindJob && q.URL == "" {
		return fmt.Errorf("queue item url cannot be empty for job submissions")
	}
	if q.RetryCount > q.MaxRetries {
		return fmt.Errorf("retry count %d exceeds max retries %d", q.RetryCount, q.MaxRetries)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new queue item
func (q *QueueItem) BeforeCreate(_ *gorm.DB) error {
	if q.Status == "" {
		q.Status = QueueItemStatusPending
	}
	return q.Validate()
}
