package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportsNewsMCP/internal/application"
	"sportsNewsMCP/internal/domain/repository"
	"sportsNewsMCP/internal/infrastructure/daum"
	"sportsNewsMCP/internal/infrastructure/metrics"
	"sportsNewsMCP/internal/infrastructure/storage"
	"sportsNewsMCP/internal/interfaces/config"
	"sportsNewsMCP/internal/interfaces/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.GetLogLevel()}))
	slog.SetDefault(logger)
	logger.Info("Starting sports news server", "port", cfg.Port, "cache_driver", cfg.CacheDriver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifier, err := application.NewClassifier(cfg.Categories())
	if err != nil {
		logger.Error("Invalid category table", "error", err)
		os.Exit(1)
	}

	newsRepo := daum.NewNewsRepository(daum.Config{
		BaseURL:  cfg.DaumBaseURL,
		PageSize: cfg.PageSize,
		Timeout:  cfg.GetUpstreamTimeout(),
		Location: cfg.Location(),
		Logger:   logger,
	})

	var cacheRepo repository.NewsCacheRepository
	if cfg.IsSQLiteCache() {
		cacheRepo, err = storage.NewSQLiteCacheRepository(cfg.CacheDSN)
		if err != nil {
			logger.Error("Failed to open sqlite cache", "error", err)
			os.Exit(1)
		}
	} else {
		cacheRepo = storage.NewMemoryCacheRepository()
	}
	if closer, ok := cacheRepo.(io.Closer); ok {
		defer closer.Close()
	}

	recorder := metrics.NewRecorder()
	service := application.NewNewsService(
		newsRepo,
		cacheRepo,
		application.WithCacheTTL(cfg.GetCacheTTL()),
		application.WithMetrics(recorder),
		application.WithLogger(logger),
	)

	e := web.NewServer(web.Dependencies{
		Classifier:   classifier,
		News:         service,
		Formatter:    application.NewFormatter(cfg.Location(), cfg.DateLayout),
		Logger:       logger,
		Metrics:      recorder,
		RateLimitRPS: cfg.RateLimitRPS,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	interval := cfg.GetCacheCleanupInterval()
	logger.Info("Cache cleanup scheduled", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			logger.Info("Shutdown signal received")
			shutdown(e.Shutdown, logger)
			return
		case err := <-serverErr:
			logger.Error("Server stopped unexpectedly", "error", err)
			return
		case <-ticker.C:
			removed, err := service.CleanupExpired(ctx)
			if err != nil {
				logger.Warn("Cache cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Debug("Expired cache entries removed", "count", removed)
			}
		}
	}
}

func shutdown(stop func(context.Context) error, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		return
	}
	logger.Info("Shutting down...")
}
