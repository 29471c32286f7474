// Package generation holds the boundary to the external collaborators of
// the pipeline: the AI content provider, the PDF renderer and the document
// store. The step executor only ever sees the interfaces defined here.
package generation

import (
	"context"
	"encoding/json"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// ContentProvider produces document content for a generation request
type ContentProvider interface {
	// FetchData gathers the source material for a request: stored résumé
	// content plus whatever the provider can pull from the job posting.
	FetchData(ctx context.Context, req *models.GenerationRequest) (json.RawMessage, error)

	// GenerateResume produces tailored résumé content from the fetched data
	GenerateResume(ctx context.Context, req *models.GenerationRequest, data json.RawMessage) (json.RawMessage, error)

	// GenerateCoverLetter produces tailored cover letter content from the fetched data
	GenerateCoverLetter(ctx context.Context, req *models.GenerationRequest, data json.RawMessage) (json.RawMessage, error)
}

// Renderer renders generated document content to a PDF
type Renderer interface {
	RenderPDF(ctx context.Context, kind string, content json.RawMessage) ([]byte, error)
}

// DocumentStore persists rendered documents and issues download URLs
type DocumentStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	URL(ctx context.Context, objectName string) (string, error)
}
