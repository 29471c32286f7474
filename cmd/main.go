package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/Jdubz/resume-pipeline/config"
	"github.com/Jdubz/resume-pipeline/internal/db"
	"github.com/Jdubz/resume-pipeline/internal/db/repos"
	"github.com/Jdubz/resume-pipeline/internal/generation"
	"github.com/Jdubz/resume-pipeline/internal/logger"
	"github.com/Jdubz/resume-pipeline/internal/services"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/middleware"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", "localhost"),
		User:     config.GetEnv("DB_USER", "postgres"),
		Password: config.GetEnv("DB_PASSWORD", "postgres"),
		DBName:   config.GetEnv("DB_NAME", "resume_pipeline"),
		Port:     config.GetEnvInt("DB_PORT", 5432),
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	queueRepo := repos.NewQueueRepository(database)
	generationRepo := repos.NewGenerationRepository(database)
	configRepo := repos.NewConfigRepository(database)

	// Generation collaborators
	provider := generation.NewHTTPProvider(generation.HTTPProviderOptions{
		BaseURL: config.GetEnv("PROVIDER_URL", "http://localhost:8090"),
		APIKey:  config.GetEnv("PROVIDER_API_KEY", ""),
	})
	renderer := generation.NewHTTPRenderer(generation.HTTPRendererOptions{
		BaseURL: config.GetEnv("RENDERER_URL", "http://localhost:8091"),
	})
	store, err := generation.NewMinioStore(generation.MinioOptions{
		Endpoint:  config.GetEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: config.GetEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: config.GetEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    config.GetEnv("MINIO_BUCKET", "documents"),
		UseSSL:    config.GetEnvBool("MINIO_USE_SSL", false),
	})
	if err != nil {
		logger.Fatalf("Failed to create document store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.EnsureBucket(ctx); err != nil {
		logger.Fatalf("Failed to ensure document bucket: %v", err)
	}

	// Services
	configService := services.NewConfigService(configRepo)
	queueService := services.NewQueueService(queueRepo, generationRepo, configService)
	runner := generation.NewRunner(provider, renderer, store)
	executor := services.NewExecutor(generationRepo, queueRepo, runner)
	generationService := services.NewGenerationService(generationRepo, executor)

	apiHandler := handlers.NewAPIHandler(queueService, generationService, configService)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())
	routes.RegisterRoutes(app, apiHandler)

	var wg sync.WaitGroup
	if config.GetEnvBool("WORKER_ENABLED", true) {
		wg.Add(1)
		go services.LaunchWorker(ctx, &wg, generationService, queueService)
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
		}
	}()

	addr := ":" + config.GetEnv("PORT", routes.DefaultPort)
	logger.Infof("Starting server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Errorf("Server error: %v", err)
	}

	wg.Wait()
	logger.Info("Shutdown complete")

	os.Exit(0)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
