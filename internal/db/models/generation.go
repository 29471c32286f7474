package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GenerationKind identifies which documents a generation request produces
type GenerationKind string

// Generation kind constants
const (
	// GenerationKindResume produces a résumé only
	GenerationKindResume GenerationKind = "resume"
	// GenerationKindCoverLetter produces a cover letter only
	GenerationKindCoverLetter GenerationKind = "coverLetter"
	// GenerationKindBoth produces a résumé and a cover letter
	GenerationKindBoth GenerationKind = "both"
)

// IncludesResume reports whether the kind produces a résumé
func (k GenerationKind) IncludesResume() bool {
	return k == GenerationKindResume || k == GenerationKindBoth
}

// IncludesCoverLetter reports whether the kind produces a cover letter
func (k GenerationKind) IncludesCoverLetter() bool {
	return k == GenerationKindCoverLetter || k == GenerationKindBoth
}

// ParseGenerationKind converts a string to a GenerationKind type
func ParseGenerationKind(str string) (GenerationKind, error) {
	switch str {
	case string(GenerationKindResume):
		return GenerationKindResume, nil
	case string(GenerationKindCoverLetter):
		return GenerationKindCoverLetter, nil
	case string(GenerationKindBoth):
		return GenerationKindBoth, nil
	default:
		return "", fmt.Errorf("invalid generation kind: %s", str)
	}
}

// GenerationStatus represents the overall state of a generation request
type GenerationStatus string

// Generation status constants
const (
	// GenerationStatusPending indicates no step has started yet
	GenerationStatusPending GenerationStatus = "pending"
	// GenerationStatusProcessing indicates at least one step has started
	GenerationStatusProcessing GenerationStatus = "processing"
	// GenerationStatusCompleted indicates every non-skipped step completed
	GenerationStatusCompleted GenerationStatus = "completed"
	// GenerationStatusFailed indicates a step failed and no later step ran
	GenerationStatusFailed GenerationStatus = "failed"
)

// String returns the string representation of the generation status
func (s GenerationStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further steps will execute
func (s GenerationStatus) IsTerminal() bool {
	return s == GenerationStatusCompleted || s == GenerationStatusFailed
}

// ParseGenerationStatus converts a string to a GenerationStatus type
func ParseGenerationStatus(str string) (GenerationStatus, error) {
	switch str {
	case string(GenerationStatusPending):
		return GenerationStatusPending, nil
	case string(GenerationStatusProcessing):
		return GenerationStatusProcessing, nil
	case string(GenerationStatusCompleted):
		return GenerationStatusCompleted, nil
	case string(GenerationStatusFailed):
		return GenerationStatusFailed, nil
	default:
		return "", fmt.Errorf("invalid generation status: %s", str)
	}
}

// StepStatus represents the state of a single generation step
type StepStatus string

// Step status constants
const (
	// StepStatusPending indicates the step has not started
	StepStatusPending StepStatus = "pending"
	// StepStatusInProgress indicates the step is currently executing
	StepStatusInProgress StepStatus = "in_progress"
	// StepStatusCompleted indicates the step finished successfully
	StepStatusCompleted StepStatus = "completed"
	// StepStatusFailed indicates the step errored
	StepStatusFailed StepStatus = "failed"
	// StepStatusSkipped indicates the step was not needed for this request
	StepStatusSkipped StepStatus = "skipped"
)

// IsTerminal reports whether the step will not run again
func (s StepStatus) IsTerminal() bool {
	return s == StepStatusCompleted || s == StepStatusFailed || s == StepStatusSkipped
}

// StepError captures why a step failed
type StepError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GenerationStep is one discrete unit of work within a generation request.
// Steps are embedded in the request row and execute strictly in list order.
type GenerationStep struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      StepStatus      `json:"status"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	DurationMS  int64           `json:"duration_ms,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *StepError      `json:"error,omitempty"`
}

// GenerationSteps is the ordered step list of a request
type GenerationSteps []GenerationStep

// NextPending returns the index of the first pending step, or -1 if none
func (steps GenerationSteps) NextPending() int {
	for i := range steps {
		if steps[i].Status == StepStatusPending {
			return i
		}
	}
	return -1
}

// Find returns a pointer to the step with the given name, or nil
func (steps GenerationSteps) Find(name string) *GenerationStep {
	for i := range steps {
		if steps[i].Name == name {
			return &steps[i]
		}
	}
	return nil
}

// stepDocumentURLs is the shape of result payloads that publish document URLs
type stepDocumentURLs struct {
	ResumeURL      string `json:"resume_url,omitempty"`
	CoverLetterURL string `json:"cover_letter_url,omitempty"`
}

// DocumentURLs scans all step results and returns any published résumé and
// cover letter URLs. Results are additive: once a step has published a URL
// it stays visible for the lifetime of the request.
func (steps GenerationSteps) DocumentURLs() (resumeURL, coverLetterURL string) {
	for i := range steps {
		if len(steps[i].Result) == 0 {
			continue
		}
		var urls stepDocumentURLs
		if err := json.Unmarshal(steps[i].Result, &urls); err != nil {
			continue
		}
		if urls.ResumeURL != "" {
			resumeURL = urls.ResumeURL
		}
		if urls.CoverLetterURL != "" {
			coverLetterURL = urls.CoverLetterURL
		}
	}
	return resumeURL, coverLetterURL
}

// GenerationRequest represents one document-generation job. Its step list is
// embedded as jsonb; the request is mutated exclusively by the step executor
// and becomes immutable once terminal.
type GenerationRequest struct {
	gorm.Model
	RequestID          string           `json:"request_id" gorm:"uniqueIndex;not null"`
	Kind               GenerationKind   `json:"kind" gorm:"not null"`
	Provider           string           `json:"provider,omitempty"`
	Role               string           `json:"role" gorm:"not null"`
	Company            string           `json:"company" gorm:"not null"`
	CompanyWebsite     string           `json:"company_website,omitempty"`
	JobDescriptionURL  string           `json:"job_description_url,omitempty" gorm:"index"`
	JobDescriptionText string           `json:"job_description_text,omitempty" gorm:"type:text"`
	Emphasize          []string         `json:"emphasize,omitempty" gorm:"type:jsonb;serializer:json"`
	Steps              GenerationSteps  `json:"steps" gorm:"type:jsonb;serializer:json"`
	Status             GenerationStatus `json:"status" gorm:"not null;index"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at" gorm:"index"`
}

// Validate ensures that the generation request data is valid
func (r *GenerationRequest) Validate() error {
	if r.RequestID == "" {
		return fmt.Errorf("generation request id cannot be empty")
	}
	if _, err := ParseGenerationKind(string(r.Kind)); err != nil {
		return err
	}
	if r.Role == "" {
		return fmt.Errorf("generation request role cannot be empty")
	}
	if r.Company == "" {
		return fmt.Errorf("generation request company cannot be empty")
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("generation request must have at least one step")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new generation request
func (r *GenerationRequest) BeforeCreate(_ *gorm.DB) error {
	if r.Status == "" {
		r.Status = GenerationStatusPending
	}
	return r.Validate()
}
