package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// TestPipeline_SubmitAndGenerateBoth walks the full happy path: a job is
// submitted, a both-documents generation runs step by step, and the finished
// request is linked back onto the queue item.
func TestPipeline_SubmitAndGenerateBoth(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	jobURL := "https://example.com/jobs/42"

	check := ts.QueueService.CheckSubmission(ts.ctx, jobURL, "Acme")
	require.True(t, check.Filter.Allowed)
	require.False(t, check.Duplicate)

	item, err := ts.QueueService.Submit(ts.ctx, SubmitJobParams{
		URL:         jobURL,
		CompanyName: "Acme",
		Source:      "web",
	})
	require.NoError(t, err)
	assert.Equal(t, models.QueueItemStatusPending, item.Status)

	ts.Runner.Results[StepUploadDocuments] = json.RawMessage(
		`{"resume_url":"https://docs.example.com/resume.pdf","cover_letter_url":"https://docs.example.com/cover.pdf"}`)

	req, err := ts.GenerationService.Start(ts.ctx, StartGenerationParams{
		Kind: "both",
		Job: GenerationJob{
			Role:              "Backend Engineer",
			Company:           "Acme",
			JobDescriptionURL: jobURL,
		},
		Preferences: GenerationPreferences{Emphasize: []string{"Go", "Postgres"}},
	})
	require.NoError(t, err)
	require.Len(t, req.Steps, 6)

	expected := []string{
		StepFetchData,
		StepGenerateResume,
		StepGenerateCoverLetter,
		StepCreateResumePDF,
		StepCreateCoverLetterPDF,
		StepUploadDocuments,
	}

	var exec *StepExecution
	for i := range expected {
		exec, err = ts.GenerationService.ExecuteNextStep(ts.ctx, req.RequestID)
		require.NoError(t, err)
		if i < len(expected)-1 {
			assert.Equal(t, models.GenerationStatusProcessing, exec.Status)
			assert.Equal(t, expected[i+1], exec.NextStep)
		}
	}
	assert.Equal(t, expected, ts.Runner.Calls)

	assert.Equal(t, models.GenerationStatusCompleted, exec.Status)
	assert.Equal(t, "https://docs.example.com/resume.pdf", exec.ResumeURL)
	assert.Equal(t, "https://docs.example.com/cover.pdf", exec.CoverLetterURL)

	// The queue item now carries the generation reference
	got, err := ts.QueueService.Get(ts.ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueItemStatusSuccess, got.Status)
	assert.Equal(t, req.RequestID, got.GenerationID)

	// And the pre-submission probe reports the finished generation
	check = ts.QueueService.CheckSubmission(ts.ctx, jobURL, "Acme")
	assert.True(t, check.Duplicate)
	assert.Equal(t, req.RequestID, check.ExistingRequestID)
}
