// Package main is the entry point for the LipidLens clinical annotation
// service. The service extracts a structured patient state from narrative
// text, classifies cardiovascular risk, evaluates statin reimbursement
// eligibility and, when configured, generates LLM counseling reports.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haneul-health/lipidlens/internal/clientdata"
	"github.com/haneul-health/lipidlens/internal/clients/openai"
	"github.com/haneul-health/lipidlens/internal/config"
	"github.com/haneul-health/lipidlens/internal/database"
	"github.com/haneul-health/lipidlens/internal/evidence"
	"github.com/haneul-health/lipidlens/internal/modules/annotate"
	"github.com/haneul-health/lipidlens/internal/modules/report"
	"github.com/haneul-health/lipidlens/internal/scheduler"
	"github.com/haneul-health/lipidlens/internal/server"
	"github.com/haneul-health/lipidlens/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Loads configuration from environment variables
// 2. Initializes logging
// 3. Optionally downloads the evidence bundle from S3
// 4. Loads the citation table (evidence.db, falling back to the embedded seed)
// 5. Opens the report cache database and schedules its cleanup
// 6. Starts the HTTP server
// 7. Waits for shutdown signal and performs graceful shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting LipidLens")

	// Refresh the evidence bundle before opening it. A failed download is
	// not fatal; the previously downloaded file or the embedded seed serves.
	if cfg.Evidence.S3Bucket != "" {
		fetchCtx, fetchCancel := context.WithTimeout(context.Background(), 90*time.Second)
		err := evidence.FetchBundle(fetchCtx, evidence.FetchConfig{
			Bucket:    cfg.Evidence.S3Bucket,
			Key:       cfg.Evidence.S3Key,
			Region:    cfg.Evidence.S3Region,
			Endpoint:  cfg.Evidence.S3Endpoint,
			AccessKey: cfg.Evidence.AccessKey,
			SecretKey: cfg.Evidence.SecretKey,
		}, cfg.EvidenceDBPath(), log)
		fetchCancel()
		if err != nil {
			log.Warn().Err(err).Msg("Evidence bundle download failed, using local data")
		}
	}

	table, err := evidence.Load(cfg.EvidenceDBPath(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load citation table")
	}
	log.Info().Int("citations", table.Len()).Msg("Citation table loaded")

	// Report cache database. Reports are expensive; cached responses are
	// served until their TTL expires, with a daily sweep of stale rows.
	cacheDB, err := database.New(database.Config{
		Path:    cfg.CacheDBPath(),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	if err := cacheRepo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	sched := scheduler.New(log)
	if err := sched.AddJob("@daily", clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		log.Error().Err(err).Msg("Failed to schedule cache cleanup")
	}
	sched.Start()
	defer sched.Stop()

	annotator := annotate.NewService(table, log)

	var llmClient *openai.Client
	reportEnabled := cfg.Report.APIKey != ""
	if reportEnabled {
		llmClient = openai.NewClient(openai.Config{
			BaseURL: cfg.Report.BaseURL,
			APIKey:  cfg.Report.APIKey,
			Model:   cfg.Report.Model,
		}, log)
		log.Info().Str("model", cfg.Report.Model).Msg("Report generation enabled")
	} else {
		log.Info().Msg("Report generation disabled (no API key configured)")
	}
	reports := report.NewService(llmClient, reportEnabled, cacheRepo, cfg.Report.CacheTTL, log)

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Evidence:  table,
		Annotator: annotator,
		Reports:   reports,
		CacheDB:   cacheDB,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
