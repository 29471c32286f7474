package repos

import (
	"time"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestQueueCreateAndGet() {
	item := s.createJobItem("https://example.com/jobs/1", "")

	// BeforeCreate defaults the status
	s.Equal(models.QueueItemStatusPending, item.Status)

	got, err := s.queueRepo.GetByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(item.URL, got.URL)
	s.Equal(models.QueueItemStatusPending, got.Status)
}

func (s *DBRepositoryTestSuite) TestQueueList_StatusFilter() {
	s.createJobItem("https://example.com/jobs/1", models.QueueItemStatusPending)
	s.createJobItem("https://example.com/jobs/2", models.QueueItemStatusFailed)
	s.createJobItem("https://example.com/jobs/3", models.QueueItemStatusFailed)

	failed := models.QueueItemStatusFailed
	items, err := s.queueRepo.List(s.ctx, &models.ListOptions{Limit: 10, Status: &failed})
	s.Require().NoError(err)
	s.Len(items, 2)
	for _, item := range items {
		s.Equal(models.QueueItemStatusFailed, item.Status)
	}

	all, err := s.queueRepo.List(s.ctx, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *DBRepositoryTestSuite) TestQueueResetForRetry() {
	now := time.Now()
	item := &models.QueueItem{
		Kind:         models.QueueItemKindJob,
		Status:       models.QueueItemStatusFailed,
		URL:          "https://example.com/jobs/1",
		MaxRetries:   3,
		ProcessedAt:  &now,
		CompletedAt:  &now,
		ErrorDetails: "provider unavailable",
	}
	s.Require().NoError(s.queueRepo.Create(s.ctx, item))

	ok, err := s.queueRepo.ResetForRetry(s.ctx, item.ID)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.queueRepo.GetByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(models.QueueItemStatusPending, got.Status)
	s.Nil(got.ProcessedAt)
	s.Nil(got.CompletedAt)
	s.Empty(got.ErrorDetails)

	// A second reset is conditional on failed status and must not match
	ok, err = s.queueRepo.ResetForRetry(s.ctx, item.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *DBRepositoryTestSuite) TestQueueDelete_IsHardAndIdempotent() {
	item := s.createJobItem("https://example.com/jobs/1", models.QueueItemStatusSuccess)

	deleted, err := s.queueRepo.Delete(s.ctx, item.ID)
	s.Require().NoError(err)
	s.True(deleted)

	// The row is gone even for unscoped reads
	var count int64
	s.Require().NoError(s.db.Unscoped().Model(&models.QueueItem{}).Count(&count).Error)
	s.Zero(count)

	deleted, err = s.queueRepo.Delete(s.ctx, item.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *DBRepositoryTestSuite) TestQueueExistsAndFirstByURL() {
	exists, err := s.queueRepo.ExistsByURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.False(exists)

	first, err := s.queueRepo.FirstByURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.Nil(first)

	item := s.createJobItem("https://example.com/jobs/1", models.QueueItemStatusPending)

	exists, err = s.queueRepo.ExistsByURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.True(exists)

	first, err = s.queueRepo.FirstByURL(s.ctx, "https://example.com/jobs/1")
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.Equal(item.ID, first.ID)
}

func (s *DBRepositoryTestSuite) TestQueueHasPendingScrape() {
	submitter := "user-1"

	has, err := s.queueRepo.HasPendingScrape(s.ctx, submitter)
	s.Require().NoError(err)
	s.False(has)

	scrape := &models.QueueItem{
		Kind:        models.QueueItemKindScrape,
		Status:      models.QueueItemStatusProcessing,
		SubmitterID: &submitter,
		MaxRetries:  3,
	}
	s.Require().NoError(s.queueRepo.Create(s.ctx, scrape))

	has, err = s.queueRepo.HasPendingScrape(s.ctx, submitter)
	s.Require().NoError(err)
	s.True(has)

	// A finished scrape does not count against the submitter
	s.Require().NoError(s.queueRepo.UpdateStatus(s.ctx, scrape.ID, models.QueueItemStatusSuccess))
	has, err = s.queueRepo.HasPendingScrape(s.ctx, submitter)
	s.Require().NoError(err)
	s.False(has)

	has, err = s.queueRepo.HasPendingScrape(s.ctx, "someone-else")
	s.Require().NoError(err)
	s.False(has)
}

func (s *DBRepositoryTestSuite) TestQueueCountByStatus() {
	s.createJobItem("https://example.com/jobs/1", models.QueueItemStatusPending)
	s.createJobItem("https://example.com/jobs/2", models.QueueItemStatusPending)
	s.createJobItem("https://example.com/jobs/3", models.QueueItemStatusFailed)

	counts, err := s.queueRepo.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), counts[models.QueueItemStatusPending])
	s.Equal(int64(1), counts[models.QueueItemStatusFailed])
	s.Zero(counts[models.QueueItemStatusSuccess])
}

func (s *DBRepositoryTestSuite) TestQueueListStaleProcessing() {
	stale := s.createJobItem("https://example.com/jobs/1", models.QueueItemStatusProcessing)
	old := time.Now().Add(-time.Hour)
	s.Require().NoError(s.db.Model(stale).Update("processed_at", &old).Error)

	fresh := s.createJobItem("https://example.com/jobs/2", models.QueueItemStatusProcessing)
	now := time.Now()
	s.Require().NoError(s.db.Model(fresh).Update("processed_at", &now).Error)

	items, err := s.queueRepo.ListStaleProcessing(s.ctx, time.Now().Add(-time.Minute))
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(stale.ID, items[0].ID)
}
