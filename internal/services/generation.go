package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
)

// GenerationJob describes the job posting a generation targets
type GenerationJob struct {
	Role               string `json:"role"`
	Company            string `json:"company"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	JobDescriptionURL  string `json:"job_description_url,omitempty"`
	JobDescriptionText string `json:"job_description_text,omitempty"`
}

// GenerationPreferences carries caller hints for content generation
type GenerationPreferences struct {
	Emphasize []string `json:"emphasize,omitempty"`
}

// StartGenerationParams are the inputs for starting a generation request
type StartGenerationParams struct {
	Kind        string                `json:"kind"`
	Provider    string                `json:"provider,omitempty"`
	Job         GenerationJob         `json:"job"`
	Preferences GenerationPreferences `json:"preferences,omitempty"`
}

// Generation handles generation request lifecycle operations
type Generation struct {
	repo     *repos.GenerationRepository
	executor *Executor
}

// NewGenerationService creates a new instance of Generation
func NewGenerationService(repo *repos.GenerationRepository, executor *Executor) *Generation {
	return &Generation{
		repo:     repo,
		executor: executor,
	}
}

// Start creates a generation request with its full step list pending. No
// step runs here; the caller (or the worker) drives execution step by step.
func (s *Generation) Start(ctx context.Context, params StartGenerationParams) (*models.GenerationRequest, error) {
	kind, err := models.ParseGenerationKind(params.Kind)
	if err != nil {
		return nil, err
	}
	if params.Job.Role == "" {
		return nil, fmt.Errorf("job role is required")
	}
	if params.Job.Company == "" {
		return nil, fmt.Errorf("job company is required")
	}

	req := &models.GenerationRequest{
		RequestID:          uuid.NewString(),
		Kind:               kind,
		Provider:           params.Provider,
		Role:               params.Job.Role,
		Company:            params.Job.Company,
		CompanyWebsite:     params.Job.CompanyWebsite,
		JobDescriptionURL:  params.Job.JobDescriptionURL,
		JobDescriptionText: params.Job.JobDescriptionText,
		Emphasize:          params.Preferences.Emphasize,
		Steps:              BuildSteps(kind),
		Status:             models.GenerationStatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	return req, nil
}

// Get retrieves a generation request by its public request ID
func (s *Generation) Get(ctx context.Context, requestID string) (*models.GenerationRequest, error) {
	return s.repo.GetByRequestID(ctx, requestID)
}

// ExecuteNextStep advances the request by exactly one step
func (s *Generation) ExecuteNextStep(ctx context.Context, requestID string) (*StepExecution, error) {
	return s.executor.ExecuteNextStep(ctx, requestID)
}

// ListActive retrieves non-terminal requests for the worker to drive
func (s *Generation) ListActive(ctx context.Context, limit int) ([]models.GenerationRequest, error) {
	return s.repo.ListActive(ctx, limit)
}
