package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
	"github.com/Jdubz/resume-pipeline/internal/logger"
)

// StepRunner dispatches one generation step to the external collaborator it
// names (content generation, PDF rendering or document upload) and returns
// the step's result payload.
type StepRunner interface {
	RunStep(ctx context.Context, req *models.GenerationRequest, step *models.GenerationStep) (json.RawMessage, error)
}

// StepExecution is the caller-visible outcome of one executor invocation
type StepExecution struct {
	RequestID      string                  `json:"request_id"`
	Status         models.GenerationStatus `json:"status"`
	NextStep       string                  `json:"next_step,omitempty"`
	Steps          models.GenerationSteps  `json:"steps"`
	ResumeURL      string                  `json:"resume_url,omitempty"`
	CoverLetterURL string                  `json:"cover_letter_url,omitempty"`
}

// Executor advances generation requests one step at a time. Each invocation
// executes exactly one pending step, which keeps the pipeline resumable from
// any point by re-invoking with the same request ID.
type Executor struct {
	repo   *repos.GenerationRepository
	queue  *repos.QueueRepository
	runner StepRunner
}

// NewExecutor creates a new instance of Executor
func NewExecutor(repo *repos.GenerationRepository, queue *repos.QueueRepository, runner StepRunner) *Executor {
	return &Executor{
		repo:   repo,
		queue:  queue,
		runner: runner,
	}
}

// ExecuteNextStep loads the request and executes its first pending step.
// Invoking it on a terminal request is a no-op that reports the terminal
// state, so repeated calls are safe.
func (e *Executor) ExecuteNextStep(ctx context.Context, requestID string) (*StepExecution, error) {
	req, err := e.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status.IsTerminal() {
		return e.execution(req), nil
	}

	idx := req.Steps.NextPending()
	if idx < 0 {
		// Nothing left to run; finalize.
		e.finalize(req, models.GenerationStatusCompleted)
		if err := e.repo.Update(ctx, req); err != nil {
			return nil, err
		}
		e.linkQueueItem(ctx, req)
		return e.execution(req), nil
	}

	step := &req.Steps[idx]
	started := time.Now()
	step.Status = models.StepStatusInProgress
	step.StartedAt = &started
	if req.Status == models.GenerationStatusPending {
		req.Status = models.GenerationStatusProcessing
	}
	if err := e.repo.Update(ctx, req); err != nil {
		return nil, err
	}

	result, runErr := e.runner.RunStep(ctx, req, step)
	finished := time.Now()
	step.CompletedAt = &finished
	step.DurationMS = finished.Sub(started).Milliseconds()

	if runErr != nil {
		step.Status = models.StepStatusFailed
		step.Error = &models.StepError{
			Message: runErr.Error(),
			Code:    "step_failed",
		}
		e.finalize(req, models.GenerationStatusFailed)
		logger.ErrorWithFields("generation step failed", map[string]interface{}{
			"request_id": req.RequestID,
			"step":       step.Name,
			"error":      runErr.Error(),
		})
	} else {
		step.Status = models.StepStatusCompleted
		step.Result = result
		if req.Steps.NextPending() < 0 {
			e.finalize(req, models.GenerationStatusCompleted)
		}
	}

	if err := e.repo.Update(ctx, req); err != nil {
		return nil, err
	}

	if req.Status == models.GenerationStatusCompleted {
		e.linkQueueItem(ctx, req)
	}
	return e.execution(req), nil
}

func (e *Executor) finalize(req *models.GenerationRequest, status models.GenerationStatus) {
	now := time.Now()
	req.Status = status
	req.CompletedAt = &now
}

// linkQueueItem back-fills the generation reference onto the originating
// queue item, if one exists for the job URL. Linking is best-effort; a
// failure here never fails the step call.
func (e *Executor) linkQueueItem(ctx context.Context, req *models.GenerationRequest) {
	if e.queue == nil || req.JobDescriptionURL == "" {
		return
	}

	item, err := e.queue.FirstByURL(ctx, req.JobDescriptionURL)
	if err != nil {
		logger.Warnf("failed to look up queue item for generation %s: %v", req.RequestID, err)
		return
	}
	if item == nil || item.GenerationID != "" {
		return
	}

	now := time.Now()
	item.GenerationID = req.RequestID
	item.Status = models.QueueItemStatusSuccess
	item.ResultMessage = "documents generated"
	item.CompletedAt = &now
	if err := e.queue.Update(ctx, item); err != nil {
		logger.Warnf("failed to link queue item %d to generation %s: %v", item.ID, req.RequestID, err)
	}
}

// execution builds the caller-visible view of the request. Document URLs are
// collected across all step results, so a published URL stays visible in
// every later response.
func (e *Executor) execution(req *models.GenerationRequest) *StepExecution {
	resumeURL, coverLetterURL := req.Steps.DocumentURLs()

	nextStep := ""
	if !req.Status.IsTerminal() {
		if idx := req.Steps.NextPending(); idx >= 0 {
			nextStep = req.Steps[idx].Name
		}
	}

	return &StepExecution{
		RequestID:      req.RequestID,
		Status:         req.Status,
		NextStep:       nextStep,
		Steps:          req.Steps,
		ResumeURL:      resumeURL,
		CoverLetterURL: coverLetterURL,
	}
}
