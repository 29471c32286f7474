package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
)

// stubRunner is a programmable StepRunner for executor tests
type stubRunner struct {
	// Results maps a step name to the payload returned for it
	Results map[string]json.RawMessage
	// Errors maps a step name to the error returned for it
	Errors map[string]error
	// Calls records executed step names in order
	Calls []string
}

func (r *stubRunner) RunStep(_ context.Context, _ *models.GenerationRequest, step *models.GenerationStep) (json.RawMessage, error) {
	r.Calls = append(r.Calls, step.Name)
	if err, ok := r.Errors[step.Name]; ok {
		return nil, err
	}
	if result, ok := r.Results[step.Name]; ok {
		return result, nil
	}
	return json.RawMessage(`{}`), nil
}

// TestSetup sets up an in-memory database, repositories and services for testing
type TestSetup struct {
	DB                *gorm.DB
	QueueRepo         *repos.QueueRepository
	GenerationRepo    *repos.GenerationRepository
	ConfigRepo        *repos.ConfigRepository
	ConfigService     *Config
	QueueService      *Queue
	Executor          *Executor
	GenerationService *Generation
	Runner            *stubRunner
	ctx               context.Context
}

// NewTestSetup creates a new test setup with in-memory database
func NewTestSetup(t *testing.T) *TestSetup {
	// Create in-memory SQLite database, one per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(
		&models.QueueItem{},
		&models.StopList{},
		&models.QueueSettings{},
		&models.GenerationRequest{},
	)
	assert.NoError(t, err, "Failed to run migrations")

	// Create real repositories
	queueRepo := repos.NewQueueRepository(db)
	generationRepo := repos.NewGenerationRepository(db)
	configRepo := repos.NewConfigRepository(db)

	// Create real services around a programmable step runner
	runner := &stubRunner{
		Results: make(map[string]json.RawMessage),
		Errors:  make(map[string]error),
	}
	configService := NewConfigService(configRepo)
	queueService := NewQueueService(queueRepo, generationRepo, configService)
	executor := NewExecutor(generationRepo, queueRepo, runner)
	generationService := NewGenerationService(generationRepo, executor)

	return &TestSetup{
		DB:                db,
		QueueRepo:         queueRepo,
		GenerationRepo:    generationRepo,
		ConfigRepo:        configRepo,
		ConfigService:     configService,
		QueueService:      queueService,
		Executor:          executor,
		GenerationService: generationService,
		Runner:            runner,
		ctx:               context.Background(),
	}
}

// CleanUp cleans up resources after test
func (ts *TestSetup) CleanUp() {
	sqlDB, err := ts.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}
