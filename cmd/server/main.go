package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/database"
	"github.com/codeprep/codeprep-backend/internal/handler"
	"github.com/codeprep/codeprep-backend/internal/logger"
	"github.com/codeprep/codeprep-backend/internal/repository"
	"github.com/codeprep/codeprep-backend/internal/router"
	"github.com/codeprep/codeprep-backend/internal/service"
	"github.com/codeprep/codeprep-backend/internal/validator"
	"github.com/codeprep/codeprep-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting CodePrep Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	problemRepo := repository.NewProblemRepository(pool)
	completionRepo := repository.NewCompletionRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	catalogService := service.NewCatalogService(problemRepo, rdb, log)
	progressService := service.NewProgressService(progressRepo, completionRepo, catalogService, rdb, log)
	mediaService := service.NewMediaService(cfg)
	executionService := service.NewExecutionService(cfg, log)
	assistantService := service.NewAssistantService(cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		Problem:   handler.NewProblemHandler(catalogService),
		Progress:  handler.NewProgressHandler(progressService),
		User:      handler.NewUserHandler(userService),
		Media:     handler.NewMediaHandler(mediaService),
		Execution: handler.NewExecutionHandler(executionService),
		Assistant: handler.NewAssistantHandler(assistantService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	summaryWorker := worker.NewSummaryWorker(pool, rdb, log)
	go summaryWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
