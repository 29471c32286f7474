package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// ConfigRepository handles database operations for the stop list and queue
// settings singletons
type ConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new instance of ConfigRepository
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{
		db: db,
	}
}

// GetStopList retrieves the stop list row. A missing row is not an error;
// it returns nil so callers treat the list as empty.
func (r *ConfigRepository) GetStopList(ctx context.Context) (*models.StopList, error) {
	var list models.StopList
	err := r.db.WithContext(ctx).Order("id ASC").First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// SaveStopList creates or updates the stop list row
func (r *ConfigRepository) SaveStopList(ctx context.Context, list *models.StopList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// GetSettings retrieves the queue settings row. A missing row is not an
// error; it returns nil so callers materialize defaults.
func (r *ConfigRepository) GetSettings(ctx context.Context) (*models.QueueSettings, error) {
	var settings models.QueueSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings creates or updates the queue settings row
func (r *ConfigRepository) SaveSettings(ctx context.Context, settings *models.QueueSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(settings).Error
}
