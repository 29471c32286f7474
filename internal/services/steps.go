package services

import (
	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// Step names. The step list of every generation request is built from these.
const (
	// StepFetchData gathers résumé content and job posting data
	StepFetchData = "fetch_data"
	// StepGenerateResume produces tailored résumé content
	StepGenerateResume = "generate_resume"
	// StepGenerateCoverLetter produces tailored cover letter content
	StepGenerateCoverLetter = "generate_cover_letter"
	// StepCreateResumePDF renders the résumé content to a PDF
	StepCreateResumePDF = "create_resume_pdf"
	// StepCreateCoverLetterPDF renders the cover letter content to a PDF
	StepCreateCoverLetterPDF = "create_cover_letter_pdf"
	// StepUploadDocuments publishes URLs for the rendered documents
	StepUploadDocuments = "upload_documents"
)

// stepDescriptions maps step names to their human-readable descriptions
var stepDescriptions = map[string]string{
	StepFetchData:            "Fetch resume data and job details",
	StepGenerateResume:       "Generate tailored resume content",
	StepGenerateCoverLetter:  "Generate tailored cover letter content",
	StepCreateResumePDF:      "Render the resume as a PDF",
	StepCreateCoverLetterPDF: "Render the cover letter as a PDF",
	StepUploadDocuments:      "Publish document download links",
}

// BuildSteps maps a generation kind to its ordered step list. The mapping is
// deterministic and side-effect free: data fetching comes first, all content
// generation precedes all rendering, and the single upload step comes last,
// so rendering before content exists or uploading before rendering is
// structurally impossible.
func BuildSteps(kind models.GenerationKind) models.GenerationSteps {
	names := []string{StepFetchData}

	if kind.IncludesResume() {
		names = append(names, StepGenerateResume)
	}
	if kind.IncludesCoverLetter() {
		names = append(names, StepGenerateCoverLetter)
	}
	if kind.IncludesResume() {
		names = append(names, StepCreateResumePDF)
	}
	if kind.IncludesCoverLetter() {
		names = append(names, StepCreateCoverLetterPDF)
	}
	names = append(names, StepUploadDocuments)

	steps := make(models.GenerationSteps, 0, len(names))
	for _, name := range names {
		steps = append(steps, models.GenerationStep{
			Name:        name,
			Description: stepDescriptions[name],
			Status:      models.StepStatusPending,
		})
	}
	return steps
}
