package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db             *gorm.DB
	ctx            context.Context
	queueRepo      *QueueRepository
	generationRepo *GenerationRepository
	configRepo     *ConfigRepository
}

// SetupTest creates a fresh in-memory database for every test
func (s *DBRepositoryTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", s.T().Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.QueueItem{},
		&models.StopList{},
		&models.QueueSettings{},
		&models.GenerationRequest{},
	)
	s.Require().NoError(err, "Failed to run migrations")

	s.db = db
	s.ctx = context.Background()
	s.queueRepo = NewQueueRepository(db)
	s.generationRepo = NewGenerationRepository(db)
	s.configRepo = NewConfigRepository(db)
}

// TearDownTest closes the database connection
func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// createJobItem inserts a job queue item with the given URL and status
func (s *DBRepositoryTestSuite) createJobItem(url string, status models.QueueItemStatus) *models.QueueItem {
	item := &models.QueueItem{
		Kind:        models.QueueItemKindJob,
		Status:      status,
		URL:         url,
		CompanyName: "Acme",
		MaxRetries:  3,
	}
	s.Require().NoError(s.queueRepo.Create(s.ctx, item))
	return item
}

func TestDBRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
