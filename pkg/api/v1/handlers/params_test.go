package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jdubz/resume-pipeline/internal/services"
)

func TestQueueSubmitJobParams_Validate(t *testing.T) {
	valid := QueueSubmitJobParams{
		URL:         "https://example.com/jobs/1",
		CompanyName: "Acme",
	}
	assert.NoError(t, valid.Validate())

	missingURL := valid
	missingURL.URL = ""
	assert.Error(t, missingURL.Validate())

	missingCompany := valid
	missingCompany.CompanyName = ""
	assert.Error(t, missingCompany.Validate())
}

func TestQueueSubmitScrapeParams_Validate(t *testing.T) {
	assert.NoError(t, QueueSubmitScrapeParams{SubmitterID: "user-1"}.Validate())
	assert.Error(t, QueueSubmitScrapeParams{}.Validate())
}

func TestQueueCheckParams_Validate(t *testing.T) {
	assert.NoError(t, QueueCheckParams{URL: "https://example.com/jobs/1"}.Validate())
	assert.Error(t, QueueCheckParams{CompanyName: "Acme"}.Validate())
}

func TestGenerationStartParams_Validate(t *testing.T) {
	valid := GenerationStartParams{
		Kind: "both",
		Job: services.GenerationJob{
			Role:    "Backend Engineer",
			Company: "Acme",
		},
	}
	assert.NoError(t, valid.Validate())

	missingKind := valid
	missingKind.Kind = ""
	assert.Error(t, missingKind.Validate())

	missingRole := valid
	missingRole.Job.Role = ""
	assert.Error(t, missingRole.Validate())

	missingCompany := valid
	missingCompany.Job.Company = ""
	assert.Error(t, missingCompany.Validate())
}

func TestGenerationStartParams_ToServiceParams(t *testing.T) {
	params := GenerationStartParams{
		Kind:     "resume",
		Provider: "default",
		Job: services.GenerationJob{
			Role:    "Backend Engineer",
			Company: "Acme",
		},
		Preferences: services.GenerationPreferences{Emphasize: []string{"Go"}},
	}

	svc := params.toServiceParams()
	assert.Equal(t, "resume", svc.Kind)
	assert.Equal(t, "default", svc.Provider)
	assert.Equal(t, "Acme", svc.Job.Company)
	assert.Equal(t, []string{"Go"}, svc.Preferences.Emphasize)
}
