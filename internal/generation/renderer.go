package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"
)

// DefaultRendererTimeout is the default timeout for PDF rendering calls
const DefaultRendererTimeout = 60 * time.Second

// HTTPRendererOptions configures the HTTP renderer client
type HTTPRendererOptions struct {
	// BaseURL is the base URL of the PDF rendering service
	BaseURL string
	// Timeout is the per-call timeout
	Timeout time.Duration
}

// HTTPRenderer is a Renderer backed by a remote PDF rendering service
type HTTPRenderer struct {
	baseURL string
	timeout time.Duration
}

var _ Renderer = (*HTTPRenderer)(nil)

// NewHTTPRenderer creates a new HTTP renderer client
func NewHTTPRenderer(opts HTTPRendererOptions) *HTTPRenderer {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultRendererTimeout
	}
	return &HTTPRenderer{
		baseURL: opts.BaseURL,
		timeout: timeout,
	}
}

// renderRequest is the JSON body sent to the rendering service
type renderRequest struct {
	Kind    string          `json:"kind"`
	Content json.RawMessage `json:"content"`
}

// RenderPDF renders document content to PDF bytes
func (r *HTTPRenderer) RenderPDF(ctx context.Context, kind string, content json.RawMessage) ([]byte, error) {
	agent := fiber.Post(r.baseURL + "/render")

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(r.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/pdf")
	agent.JSON(renderRequest{Kind: kind, Content: content})

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("render request failed: %w", errs[0])
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("renderer returned status %d: %s", statusCode, string(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("renderer returned an empty document")
	}
	return body, nil
}
