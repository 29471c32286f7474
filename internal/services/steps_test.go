package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

func TestBuildSteps(t *testing.T) {
	tests := []struct {
		kind models.GenerationKind
		want []string
	}{
		{
			kind: models.GenerationKindResume,
			want: []string{StepFetchData, StepGenerateResume, StepCreateResumePDF, StepUploadDocuments},
		},
		{
			kind: models.GenerationKindCoverLetter,
			want: []string{StepFetchData, StepGenerateCoverLetter, StepCreateCoverLetterPDF, StepUploadDocuments},
		},
		{
			kind: models.GenerationKindBoth,
			want: []string{
				StepFetchData,
				StepGenerateResume,
				StepGenerateCoverLetter,
				StepCreateResumePDF,
				StepCreateCoverLetterPDF,
				StepUploadDocuments,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			steps := BuildSteps(tt.kind)
			require.Len(t, steps, len(tt.want))
			for i, name := range tt.want {
				assert.Equal(t, name, steps[i].Name)
				assert.Equal(t, models.StepStatusPending, steps[i].Status)
				assert.NotEmpty(t, steps[i].Description)
			}
		})
	}
}

func TestBuildSteps_Deterministic(t *testing.T) {
	first := BuildSteps(models.GenerationKindBoth)
	second := BuildSteps(models.GenerationKindBoth)
	assert.Equal(t, first, second)
}
