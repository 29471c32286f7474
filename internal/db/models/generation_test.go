package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerationKind(t *testing.T) {
	tests := []struct {
		input   string
		want    GenerationKind
		wantErr bool
	}{
		{input: "resume", want: GenerationKindResume},
		{input: "coverLetter", want: GenerationKindCoverLetter},
		{input: "both", want: GenerationKindBoth},
		{input: "cover_letter", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGenerationKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerationKind_Includes(t *testing.T) {
	assert.True(t, GenerationKindResume.IncludesResume())
	assert.False(t, GenerationKindResume.IncludesCoverLetter())

	assert.False(t, GenerationKindCoverLetter.IncludesResume())
	assert.True(t, GenerationKindCoverLetter.IncludesCoverLetter())

	assert.True(t, GenerationKindBoth.IncludesResume())
	assert.True(t, GenerationKindBoth.IncludesCoverLetter())
}

func TestGenerationStatus_IsTerminal(t *testing.T) {
	assert.False(t, GenerationStatusPending.IsTerminal())
	assert.False(t, GenerationStatusProcessing.IsTerminal())
	assert.True(t, GenerationStatusCompleted.IsTerminal())
	assert.True(t, GenerationStatusFailed.IsTerminal())
}

func TestGenerationSteps_NextPending(t *testing.T) {
	steps := GenerationSteps{
		{Name: "a", Status: StepStatusCompleted},
		{Name: "b", Status: StepStatusPending},
		{Name: "c", Status: StepStatusPending},
	}
	assert.Equal(t, 1, steps.NextPending())

	steps[1].Status = StepStatusFailed
	assert.Equal(t, 2, steps.NextPending())

	steps[2].Status = StepStatusSkipped
	assert.Equal(t, -1, steps.NextPending())

	assert.Equal(t, -1, GenerationSteps{}.NextPending())
}

func TestGenerationSteps_Find(t *testing.T) {
	steps := GenerationSteps{
		{Name: "fetch_data", Status: StepStatusPending},
		{Name: "upload_documents", Status: StepStatusPending},
	}

	step := steps.Find("upload_documents")
	require.NotNil(t, step)

	// Find must return a pointer into the slice, not a copy
	step.Status = StepStatusCompleted
	assert.Equal(t, StepStatusCompleted, steps[1].Status)

	assert.Nil(t, steps.Find("missing"))
}

func TestGenerationSteps_DocumentURLs(t *testing.T) {
	steps := GenerationSteps{
		{Name: "fetch_data", Status: StepStatusCompleted, Result: json.RawMessage(`{"sections":3}`)},
		{Name: "create_resume_pdf", Status: StepStatusCompleted, Result: json.RawMessage(`{"resume_url":"https://docs.example.com/resume.pdf"}`)},
		{Name: "upload_documents", Status: StepStatusPending},
	}

	resumeURL, coverLetterURL := steps.DocumentURLs()
	assert.Equal(t, "https://docs.example.com/resume.pdf", resumeURL)
	assert.Empty(t, coverLetterURL)

	// A later step publishing the second URL must not retract the first
	steps[2].Status = StepStatusCompleted
	steps[2].Result = json.RawMessage(`{"cover_letter_url":"https://docs.example.com/cover.pdf"}`)

	resumeURL, coverLetterURL = steps.DocumentURLs()
	assert.Equal(t, "https://docs.example.com/resume.pdf", resumeURL)
	assert.Equal(t, "https://docs.example.com/cover.pdf", coverLetterURL)
}

func TestGenerationRequest_Validate(t *testing.T) {
	valid := GenerationRequest{
		RequestID: "req-1",
		Kind:      GenerationKindBoth,
		Role:      "Backend Engineer",
		Company:   "Acme",
		Steps:     GenerationSteps{{Name: "fetch_data", Status: StepStatusPending}},
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.RequestID = ""
	assert.Error(t, missingID.Validate())

	badKind := valid
	badKind.Kind = "letter"
	assert.Error(t, badKind.Validate())

	missingRole := valid
	missingRole.Role = ""
	assert.Error(t, missingRole.Validate())

	noSteps := valid
	noSteps.Steps = nil
	assert.Error(t, noSteps.Validate())
}
