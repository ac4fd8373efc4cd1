package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/formease/formease-server/internal/cache"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/export"
	"github.com/formease/formease-server/internal/extract"
	"github.com/formease/formease-server/internal/ingest"
	"github.com/formease/formease-server/internal/llm/openai"
	"github.com/formease/formease-server/internal/logging"
	"github.com/formease/formease-server/internal/repository"
	"github.com/formease/formease-server/internal/server"
)

func main() {
	cfg := common.LoadConfig()
	logger := logging.New(cfg.Log)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("creating DB pool failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("DB health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("DB health OK")

	extractionCache := cache.NewNoopCache()
	if cfg.Cache.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr, DB: cfg.Cache.DB})
		extractionCache = cache.NewRedisCache(rdb, cfg.Cache.TTL, logger)
		logger.Info("extraction cache enabled", "addr", cfg.Cache.Addr)
	}

	llmClient := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	ingestor := ingest.NewIngestor(logger)
	extractSvc := extract.NewService(ingestor, llmClient, extractionCache, logger)

	submissionRepo := repository.NewSubmissionRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	exportSvc := export.NewService(submissionRepo, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	server.SetupRoutes(r, &server.Handlers{
		Extract:     server.NewExtractHandler(extractSvc, logger),
		Submissions: server.NewSubmissionHandler(submissionRepo, userRepo, logger),
		Export:      server.NewExportHandler(exportSvc, logger),
	}, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("stopped")
}
