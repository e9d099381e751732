package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harisha-viswa/hiring-system/config"
	"github.com/harisha-viswa/hiring-system/internal/delivery/http/middleware"
	v1 "github.com/harisha-viswa/hiring-system/internal/delivery/http/v1"
	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/internal/repository/memory"
	"github.com/harisha-viswa/hiring-system/internal/repository/postgres"
	"github.com/harisha-viswa/hiring-system/internal/usecase"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
	"github.com/harisha-viswa/hiring-system/pkg/database"
	"github.com/harisha-viswa/hiring-system/pkg/logger"
	"github.com/harisha-viswa/hiring-system/pkg/redis"
	"github.com/harisha-viswa/hiring-system/pkg/scoring"
	"github.com/harisha-viswa/hiring-system/pkg/validation"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Debug)
	logger.Log.Info("Starting hiring system", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Repositories (Postgres when configured, in-memory otherwise)
	var (
		jobRepo       domain.JobRepository
		candidateRepo domain.CandidateRepository
		appRepo       domain.ApplicationRepository
	)
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresPool(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		jobRepo = postgres.NewJobRepository(dbPool)
		candidateRepo = postgres.NewCandidateRepository(dbPool)
		appRepo = postgres.NewApplicationRepository(dbPool)
	} else {
		logger.Log.Warn("Running with in-memory repositories; data will not survive restarts")
		jobRepo = memory.NewJobRepository()
		candidateRepo = memory.NewCandidateRepository()
		appRepo = memory.NewApplicationRepository()
	}

	// 4. Setup Blob Storage
	var blobStore blob.Store
	switch cfg.StorageDriver {
	case "s3":
		blobStore, err = blob.NewS3Store(ctx, blob.S3Config{
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
	default:
		blobStore, err = blob.NewLocalStore(cfg.UploadDir)
	}
	if err != nil {
		logger.Log.Error("Failed to set up blob storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 5. Setup Scorer (optional)
	var scorer domain.Scorer
	if cfg.ScorerURL != "" {
		scorer = scoring.NewHTTPScorer(cfg.ScorerURL)
	} else {
		logger.Log.Warn("SCORER_URL not set; applications will carry no score")
	}

	// 6. Setup Redis (optional, rate limiting)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable; rate limiting falls back to in-process counters", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	jobUC := usecase.NewJobUsecase(jobRepo, blobStore)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, blobStore, validate)
	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, candidateRepo, blobStore, scorer, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		CandidateUC:   candidateUC,
		ApplicationUC: applicationUC,
		RateLimit: middleware.RateLimitConfig{
			Window:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
			Threshold: cfg.RateLimitThreshold,
			Redis:     redis.Client(),
		},
		Config: cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited gracefully")
}
