package repos

import (
	"encoding/json"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// createGeneration inserts a generation request with the given identifiers
func (s *DBRepositoryTestSuite) createGeneration(requestID, jobURL string, status models.GenerationStatus) *models.GenerationRequest {
	req := &models.GenerationRequest{
		RequestID:         requestID,
		Kind:              models.GenerationKindBoth,
		Role:              "Backend Engineer",
		Company:           "Acme",
		JobDescriptionURL: jobURL,
		Status:            status,
		Steps: models.GenerationSteps{
			{Name: "fetch_data", Status: models.StepStatusPending},
			{Name: "upload_documents", Status: models.StepStatusPending},
		},
	}
	s.Require().NoError(s.generationRepo.Create(s.ctx, req))
	return req
}

func (s *DBRepositoryTestSuite) TestGenerationCreateAndGet() {
	s.createGeneration("req-1", "https://example.com/jobs/1", "")

	got, err := s.generationRepo.GetByRequestID(s.ctx, "req-1")
	s.Require().NoError(err)
	s.Equal(models.GenerationStatusPending, got.Status)
	s.Equal(models.GenerationKindBoth, got.Kind)
	s.Require().Len(got.Steps, 2)
	s.Equal("fetch_data", got.Steps[0].Name)
}

func (s *DBRepositoryTestSuite) TestGenerationGet_NotFound() {
	_, err := s.generationRepo.GetByRequestID(s.ctx, "missing")
	s.Error(err)
}

func (s *DBRepositoryTestSuite) TestGenerationUpdate_PersistsSteps() {
	req := s.createGeneration("req-1", "", "")

	req.Steps[0].Status = models.StepStatusCompleted
	req.Steps[0].Result = json.RawMessage(`{"resume_url":"https://docs.example.com/resume.pdf"}`)
	req.Status = models.GenerationStatusProcessing
	s.Require().NoError(s.generationRepo.Update(s.ctx, req))

	got, err := s.generationRepo.GetByRequestID(s.ctx, "req-1")
	s.Require().NoError(err)
	s.Equal(models.GenerationStatusProcessing, got.Status)
	s.Equal(models.StepStatusCompleted, got.Steps[0].Status)

	resumeURL, _ := got.Steps.DocumentURLs()
	s.Equal("https://docs.example.com/resume.pdf", resumeURL)
}

func (s *DBRepositoryTestSuite) TestGenerationListActive() {
	s.createGeneration("req-1", "", models.GenerationStatusPending)
	s.createGeneration("req-2", "", models.GenerationStatusProcessing)
	s.createGeneration("req-3", "", models.GenerationStatusCompleted)
	s.createGeneration("req-4", "", models.GenerationStatusFailed)

	active, err := s.generationRepo.ListActive(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(active, 2)
	// Oldest first, so abandoned requests are not starved
	s.Equal("req-1", active[0].RequestID)
	s.Equal("req-2", active[1].RequestID)

	limited, err := s.generationRepo.ListActive(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *DBRepositoryTestSuite) TestGenerationFindCompletedByJobURL() {
	found, err := s.generationRepo.FindCompletedByJobURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.Nil(found)

	// A pending request for the URL does not count
	s.createGeneration("req-1", "https://example.com/jobs/1", models.GenerationStatusPending)
	found, err = s.generationRepo.FindCompletedByJobURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.Nil(found)

	s.createGeneration("req-2", "https://example.com/jobs/1", models.GenerationStatusCompleted)
	found, err = s.generationRepo.FindCompletedByJobURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("req-2", found.RequestID)
}
