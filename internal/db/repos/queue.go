// Package repos provides the database repositories for the intake queue and
// the generation pipeline.
package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// QueueRepository handles database operations for queue items
type QueueRepository struct {
	db *gorm.DB
}

// NewQueueRepository creates a new instance of QueueRepository
func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{
		db: db,
	}
}

// Create creates a new queue item in the database
func (r *QueueRepository) Create(ctx context.Context, item *models.QueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves a queue item by ID from the database
func (r *QueueRepository) GetByID(ctx context.Context, id uint) (*models.QueueItem, error) {
	var item models.QueueItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves queue items with pagination, optionally filtered by status
func (r *QueueRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.QueueItem, error) {
	var items []models.QueueItem
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if opts != nil {
		if opts.Status != nil {
			query = query.Where(models.QueueItem{Status: *opts.Status})
		}
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit).Offset(opts.Offset)
		}
	}
	err := query.Find(&items).Error
	return items, err
}

// Update updates an existing queue item in the database
func (r *QueueRepository) Update(ctx context.Context, item *models.QueueItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateStatus updates the status of a queue item in the database
func (r *QueueRepository) UpdateStatus(ctx context.Context, id uint, status models.QueueItemStatus) error {
	return r.db.WithContext(ctx).Model(&models.QueueItem{}).
		Where("id = ?", id).
		Update(models.QueueItemStatusField, status).Error
}

// ResetForRetry resets a failed queue item back to pending, clearing its
// error and processing timestamps. The status check is part of the update so
// the transition only happens when the stored status is exactly failed.
// Returns true when a row was updated.
func (r *QueueRepository) ResetForRetry(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.QueueItem{}).
		Where("id = ? AND status = ?", id, models.QueueItemStatusFailed).
		Updates(map[string]interface{}{
			"status":        models.QueueItemStatusPending,
			"processed_at":  nil,
			"completed_at":  nil,
			"error_details": "",
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a queue item permanently. Queue items never own children,
// so nothing cascades. Returns true when a row was deleted.
func (r *QueueRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.QueueItem{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsByURL reports whether any queue item exists with the given target URL
func (r *QueueRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QueueItem{}).
		Where(models.QueueItem{URL: url}).
		Count(&count).Error
	return count > 0, err
}

// FirstByURL retrieves the most recent queue item with the given target URL,
// or nil if none exists
func (r *QueueRepository) FirstByURL(ctx context.Context, url string) (*models.QueueItem, error) {
	var item models.QueueItem
	err := r.db.WithContext(ctx).
		Where(models.QueueItem{URL: url}).
		Order("created_at DESC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// HasPendingScrape reports whether the submitter already has a scrape item
// that is pending or processing
func (r *QueueRepository) HasPendingScrape(ctx context.Context, submitterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QueueItem{}).
		Where("kind = ? AND submitter_id = ? AND status IN ?",
			models.QueueItemKindScrape, submitterID,
			[]models.QueueItemStatus{models.QueueItemStatusPending, models.QueueItemStatusProcessing}).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus aggregates queue item counts per status in a single scan
func (r *QueueRepository) CountByStatus(ctx context.Context) (map[models.QueueItemStatus]int64, error) {
	type statusCount struct {
		Status models.QueueItemStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&models.QueueItem{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.QueueItemStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListStaleProcessing retrieves processing items whose processing started
// before the given cutoff
func (r *QueueRepository) ListStaleProcessing(ctx context.Context, cutoff time.Time) ([]models.QueueItem, error) {
	var items []models.QueueItem
	err := r.db.WithContext(ctx).
		Where("status = ? AND processed_at IS NOT NULL AND processed_at < ?",
			models.QueueItemStatusProcessing, cutoff).
		Find(&items).Error
	return items, err
}
