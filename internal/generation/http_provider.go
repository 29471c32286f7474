package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// DefaultProviderTimeout is the default timeout for content provider calls.
// Generation calls are slow; this needs far more headroom than a normal API
// request.
const DefaultProviderTimeout = 2 * time.Minute

// HTTPProviderOptions configures the HTTP content provider client
type HTTPProviderOptions struct {
	// BaseURL is the base URL of the content-generation service
	BaseURL string
	// APIKey is sent as a bearer token when set
	APIKey string
	// Timeout is the per-call timeout
	Timeout time.Duration
}

// HTTPProvider is a ContentProvider backed by a remote content-generation
// service speaking JSON over HTTP
type HTTPProvider struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

var _ ContentProvider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a new HTTP content provider client
func NewHTTPProvider(opts HTTPProviderOptions) *HTTPProvider {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultProviderTimeout
	}
	return &HTTPProvider{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		timeout: timeout,
	}
}

// providerRequest is the JSON body sent for every provider call
type providerRequest struct {
	Provider           string          `json:"provider,omitempty"`
	Role               string          `json:"role"`
	Company            string          `json:"company"`
	CompanyWebsite     string          `json:"company_website,omitempty"`
	JobDescriptionURL  string          `json:"job_description_url,omitempty"`
	JobDescriptionText string          `json:"job_description_text,omitempty"`
	Emphasize          []string        `json:"emphasize,omitempty"`
	Data               json.RawMessage `json:"data,omitempty"`
}

// FetchData gathers source material for the request
func (p *HTTPProvider) FetchData(ctx context.Context, req *models.GenerationRequest) (json.RawMessage, error) {
	return p.post(ctx, "/v1/fetch-data", p.body(req, nil))
}

// GenerateResume produces tailored résumé content
func (p *HTTPProvider) GenerateResume(ctx context.Context, req *models.GenerationRequest, data json.RawMessage) (json.RawMessage, error) {
	return p.post(ctx, "/v1/resume", p.body(req, data))
}

// GenerateCoverLetter produces tailored cover letter content
func (p *HTTPProvider) GenerateCoverLetter(ctx context.Context, req *models.GenerationRequest, data json.RawMessage) (json.RawMessage, error) {
	return p.post(ctx, "/v1/cover-letter", p.body(req, data))
}

func (p *HTTPProvider) body(req *models.GenerationRequest, data json.RawMessage) providerRequest {
	return providerRequest{
		Provider:           req.Provider,
		Role:               req.Role,
		Company:            req.Company,
		CompanyWebsite:     req.CompanyWebsite,
		JobDescriptionURL:  req.JobDescriptionURL,
		JobDescriptionText: req.JobDescriptionText,
		Emphasize:          req.Emphasize,
		Data:               data,
	}
}

func (p *HTTPProvider) post(ctx context.Context, endpoint string, body providerRequest) (json.RawMessage, error) {
	agent := fiber.Post(p.baseURL + endpoint)

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(p.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if p.apiKey != "" {
		agent.Set("Authorization", "Bearer "+p.apiKey)
	}
	agent.JSON(body)

	statusCode, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("provider request failed: %w", errs[0])
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d: %s", statusCode, string(respBody))
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("provider returned invalid JSON")
	}
	return json.RawMessage(respBody), nil
}
