package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// GenerationRepository handles database operations for generation requests
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new instance of GenerationRepository
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{
		db: db,
	}
}

// Create creates a new generation request in the database
func (r *GenerationRepository) Create(ctx context.Context, req *models.GenerationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByRequestID retrieves a generation request by its public request ID
func (r *GenerationRepository) GetByRequestID(ctx context.Context, requestID string) (*models.GenerationRequest, error) {
	var req models.GenerationRequest
	if err := r.db.WithContext(ctx).
		Where(models.GenerationRequest{RequestID: requestID}).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Update persists the full state of a generation request, including its
// embedded step list
func (r *GenerationRepository) Update(ctx context.Context, req *models.GenerationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// ListActive retrieves non-terminal generation requests, oldest first
func (r *GenerationRepository) ListActive(ctx context.Context, limit int) ([]models.GenerationRequest, error) {
	var reqs []models.GenerationRequest
	query := r.db.WithContext(ctx).
		Where("status IN ?", []models.GenerationStatus{
			models.GenerationStatusPending,
			models.GenerationStatusProcessing,
		}).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&reqs).Error
	return reqs, err
}

// FindCompletedByJobURL retrieves the most recent completed request for a
// job description URL, or nil if none exists
func (r *GenerationRepository) FindCompletedByJobURL(ctx context.Context, url string) (*models.GenerationRequest, error) {
	var req models.GenerationRequest
	err := r.db.WithContext(ctx).
		Where(models.GenerationRequest{
			JobDescriptionURL: url,
			Status:            models.GenerationStatusCompleted,
		}).
		Order("created_at DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
