package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/ai"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/database"
	"github.com/vitaworks/vitae-backend/internal/handler"
	"github.com/vitaworks/vitae-backend/internal/logger"
	"github.com/vitaworks/vitae-backend/internal/repository"
	"github.com/vitaworks/vitae-backend/internal/router"
	"github.com/vitaworks/vitae-backend/internal/search"
	"github.com/vitaworks/vitae-backend/internal/service"
	"github.com/vitaworks/vitae-backend/internal/validator"
	"github.com/vitaworks/vitae-backend/internal/worker"
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
		Msg("Starting Vitae Backend")

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

	// ─── Open Search Index ─────────────────────────────────────────────
	index, err := search.Open(cfg.IndexDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open search index")
	}
	defer index.Close()

	// ─── Initialize Model Client ───────────────────────────────────────
	aiClient, err := ai.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize model client")
	}
	enhancer := ai.NewEnhancer(aiClient, log)
	letterGenerator := ai.NewLetterGenerator(aiClient, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	resumeRepo := repository.NewResumeRepository(pool)
	enhancementRepo := repository.NewEnhancementRepository(pool)
	coverLetterRepo := repository.NewCoverLetterRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	adminService := service.NewAdminService(adminRepo, log)
	resumeService := service.NewResumeService(cfg, resumeRepo, index, log)
	enhancementService := service.NewEnhancementService(resumeRepo, jobRepo, enhancementRepo, rdb, log)
	coverLetterService := service.NewCoverLetterService(resumeRepo, jobRepo, coverLetterRepo, rdb, log)
	exportService := service.NewExportService(cfg, enhancementService, resumeService, log)
	settingService := service.NewSettingService(settingRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, adminService),
		Resume:      handler.NewResumeHandler(resumeService),
		Enhancement: handler.NewEnhancementHandler(enhancementService),
		CoverLetter: handler.NewCoverLetterHandler(coverLetterService),
		Export:      handler.NewExportHandler(exportService),
		Setting:     handler.NewSettingHandler(settingService),
		System:      handler.NewSystemHandler(pool, rdb, index, log),
		WS:          handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Recover Orphaned Jobs ────────────────────────────────────────
	// Jobs left RUNNING by a crash are failed first, then resumes stuck
	// in ENHANCING with no live job go back to UPLOADED.
	if n, err := jobRepo.FailOrphanedRunning(ctx); err != nil {
		log.Warn().Err(err).Msg("Orphaned job cleanup failed")
	} else if n > 0 {
		log.Warn().Int64("count", n).Msg("Marked orphaned RUNNING jobs as failed")
	}
	if n, err := resumeRepo.ResetOrphanedEnhancing(ctx); err != nil {
		log.Warn().Err(err).Msg("Orphaned resume cleanup failed")
	} else if n > 0 {
		log.Warn().Int64("count", n).Msg("Reset resumes stuck in ENHANCING")
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	enhanceWorker := worker.NewEnhanceWorker(resumeRepo, jobRepo, enhancementRepo, enhancer, rdb, log)
	coverLetterWorker := worker.NewCoverLetterWorker(resumeRepo, jobRepo, enhancementRepo, coverLetterRepo, letterGenerator, rdb, log)

	go enhanceWorker.Start(workerCtx)
	go coverLetterWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    cfg.ServerAddress + ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
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

	// 2. Stop background workers and let in-flight jobs finish.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
