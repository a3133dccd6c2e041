package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/grade-genius-api/api/swagger"
	"github.com/noah-isme/grade-genius-api/internal/handler"
	"github.com/noah-isme/grade-genius-api/internal/repository"
	"github.com/noah-isme/grade-genius-api/internal/service"
	"github.com/noah-isme/grade-genius-api/pkg/cache"
	"github.com/noah-isme/grade-genius-api/pkg/config"
	"github.com/noah-isme/grade-genius-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Grade Genius API
// @version 1.0.0
// @description Weighted course grade calculator with target score solving
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	cacheSvc, cacheRepo := newCacheService(cfg, connectRedis(cfg, logr), metricsSvc, logr)
	defer cacheRepo.Close() //nolint:errcheck

	calculator := service.NewCalculatorService(cacheSvc, metricsSvc, validator.New(), logr, service.CalculatorServiceConfig{
		DefaultTarget: cfg.Grading.DefaultTarget,
		CacheTTL:      cfg.Cache.TTL,
	})
	exporter := service.NewExportService(service.ExportConfig{PDFTitle: cfg.Export.PDFTitle}, logr, nil, nil)
	notifier := service.NewNotificationService(service.NotificationConfig{
		Enabled:    cfg.Notifications.Enabled,
		WebhookURL: cfg.Notifications.WebhookURL,
		Timeout:    cfg.Notifications.Timeout,
		Workers:    cfg.Notifications.Workers,
		Retries:    cfg.Notifications.Retries,
		RetryDelay: cfg.Notifications.RetryDelay,
	}, nil, metricsSvc, logr)
	notifier.Start(ctx)
	defer notifier.Stop()

	r := newRouter(routerDeps{
		cfg:      cfg,
		logger:   logr,
		metrics:  metricsSvc,
		grades:   handler.NewGradeHandler(calculator, exporter, notifier, logr),
		observer: handler.NewMetricsHandler(metricsSvc, cacheSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env,
			"cache", cacheSvc.Enabled(), "notifications", notifier.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}

// connectRedis returns nil when caching is off or Redis is unreachable; the service then runs
// without a cache.
func connectRedis(cfg *config.Config, logr *zap.Logger) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, result cache disabled", zap.Error(err))
		return nil
	}
	return client
}

// newCacheService keeps the cache off unless Redis actually connected.
func newCacheService(cfg *config.Config, client *redis.Client, metrics *service.MetricsService, logr *zap.Logger) (*service.CacheService, *repository.CacheRepository) {
	repo := repository.NewCacheRepository(client, logr)
	enabled := cfg.Cache.Enabled && client != nil
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logr, enabled), repo
}
