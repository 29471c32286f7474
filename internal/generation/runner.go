package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/services"
)

// Runner dispatches generation steps to the external collaborators. It
// implements services.StepRunner.
type Runner struct {
	provider ContentProvider
	renderer Renderer
	store    DocumentStore
}

// NewRunner creates a new instance of Runner
func NewRunner(provider ContentProvider, renderer Renderer, store DocumentStore) *Runner {
	return &Runner{
		provider: provider,
		renderer: renderer,
		store:    store,
	}
}

var _ services.StepRunner = (*Runner)(nil)

// objectResult is the result payload of a render step
type objectResult struct {
	ObjectKey string `json:"object_key"`
	SizeBytes int    `json:"size_bytes"`
}

// RunStep executes the collaborator call for a single step, using the
// results of the preceding steps already recorded on the request.
func (r *Runner) RunStep(ctx context.Context, req *models.GenerationRequest, step *models.GenerationStep) (json.RawMessage, error) {
	switch step.Name {
	case services.StepFetchData:
		return r.provider.FetchData(ctx, req)

	case services.StepGenerateResume:
		data, err := resultOf(req, services.StepFetchData)
		if err != nil {
			return nil, err
		}
		return r.provider.GenerateResume(ctx, req, data)

	case services.StepGenerateCoverLetter:
		data, err := resultOf(req, services.StepFetchData)
		if err != nil {
			return nil, err
		}
		return r.provider.GenerateCoverLetter(ctx, req, data)

	case services.StepCreateResumePDF:
		return r.renderAndStore(ctx, req, "resume", services.StepGenerateResume)

	case services.StepCreateCoverLetterPDF:
		return r.renderAndStore(ctx, req, "cover_letter", services.StepGenerateCoverLetter)

	case services.StepUploadDocuments:
		return r.publishDocuments(ctx, req)

	default:
		return nil, fmt.Errorf("unknown generation step: %s", step.Name)
	}
}

// renderAndStore renders the content produced by a generation step and
// stores the PDF under a request-scoped object key
func (r *Runner) renderAndStore(ctx context.Context, req *models.GenerationRequest, kind, contentStep string) (json.RawMessage, error) {
	content, err := resultOf(req, contentStep)
	if err != nil {
		return nil, err
	}

	pdf, err := r.renderer.RenderPDF(ctx, kind, content)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s pdf: %w", kind, err)
	}

	key := fmt.Sprintf("generations/%s/%s.pdf", req.RequestID, kind)
	if err := r.store.Upload(ctx, key, pdf, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to store %s pdf: %w", kind, err)
	}

	return json.Marshal(objectResult{ObjectKey: key, SizeBytes: len(pdf)})
}

// publishDocuments issues download URLs for every document the render steps
// produced
func (r *Runner) publishDocuments(ctx context.Context, req *models.GenerationRequest) (json.RawMessage, error) {
	urls := map[string]string{}

	if key, ok := objectKeyOf(req, services.StepCreateResumePDF); ok {
		url, err := r.store.URL(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to issue resume url: %w", err)
		}
		urls["resume_url"] = url
	}

	if key, ok := objectKeyOf(req, services.StepCreateCoverLetterPDF); ok {
		url, err := r.store.URL(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to issue cover letter url: %w", err)
		}
		urls["cover_letter_url"] = url
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no rendered documents to publish")
	}
	return json.Marshal(urls)
}

// resultOf returns the recorded result of a completed predecessor step
func resultOf(req *models.GenerationRequest, name string) (json.RawMessage, error) {
	step := req.Steps.Find(name)
	if step == nil || step.Status != models.StepStatusCompleted || len(step.Result) == 0 {
		return nil, fmt.Errorf("step %s has no completed result", name)
	}
	return step.Result, nil
}

// objectKeyOf extracts the stored object key from a render step, if that
// step ran for this request
func objectKeyOf(req *models.GenerationRequest, name string) (string, bool) {
	step := req.Steps.Find(name)
	if step == nil || step.Status != models.StepStatusCompleted || len(step.Result) == 0 {
		return "", false
	}
	var result objectResult
	if err := json.Unmarshal(step.Result, &result); err != nil || result.ObjectKey == "" {
		return "", false
	}
	return result.ObjectKey, true
}
