package repos

import (
	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestStopList_MissingRowReadsAsNil() {
	list, err := s.configRepo.GetStopList(s.ctx)
	s.Require().NoError(err)
	s.Nil(list)
}

func (s *DBRepositoryTestSuite) TestStopList_SaveAndReload() {
	list := &models.StopList{
		ExcludedCompanies: []string{"Initech"},
		ExcludedDomains:   []string{"spam.example"},
		UpdatedBy:         "admin",
	}
	s.Require().NoError(s.configRepo.SaveStopList(s.ctx, list))

	got, err := s.configRepo.GetStopList(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal([]string{"Initech"}, got.ExcludedCompanies)
	s.Equal([]string{"spam.example"}, got.ExcludedDomains)
	s.Equal("admin", got.UpdatedBy)

	// Saving again updates the same row instead of adding one
	got.ExcludedKeywords = []string{"unpaid"}
	s.Require().NoError(s.configRepo.SaveStopList(s.ctx, got))

	var count int64
	s.Require().NoError(s.db.Model(&models.StopList{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *DBRepositoryTestSuite) TestSettings_MissingRowReadsAsNil() {
	settings, err := s.configRepo.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Nil(settings)
}

func (s *DBRepositoryTestSuite) TestSettings_SaveValidatesFirst() {
	bad := models.DefaultQueueSettings()
	bad.ProcessingTimeoutSeconds = 0
	s.Error(s.configRepo.SaveSettings(s.ctx, bad))

	good := models.DefaultQueueSettings()
	good.MaxRetries = 5
	s.Require().NoError(s.configRepo.SaveSettings(s.ctx, good))

	got, err := s.configRepo.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(5, got.MaxRetries)
}
