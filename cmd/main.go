package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/handler"
	"github.com/KasumiMercury/traffic-count-collector/internal/health"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/measurementrecorder"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/repository"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/snaps"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/tabular"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/logging"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/metrics"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/middleware"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/alert"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/collect"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/dedup"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/prediction"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/sheet"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("traffic-count-collector")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	collectorMetrics, err := metrics.NewCollectorMetrics()
	if err != nil {
		slog.Error("failed to initialize collector metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	recorder, err := measurementrecorder.NewRecorder(ctx, measurementrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize measurement recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close measurement recorder", slog.String("error", err.Error()))
		}
	}()

	notifier, cleanup, err := initNotifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize notifier", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("notifier cleanup error", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	store, err := tabular.New(ctx, cfg.Tabular, redisClient)
	if err != nil {
		slog.Error("failed to initialize tabular store",
			slog.String("backend", string(cfg.Tabular.Backend)),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close tabular store", slog.String("error", err.Error()))
		}
	}()

	slog.Info("tabular store initialized",
		slog.String("backend", string(cfg.Tabular.Backend)),
	)

	collector := cfg.Collector
	alertTable, _ := collector.AlertTable()

	calculator := window.NewCalculator(collector.Location, collector.OperatingStartHour, collector.OperatingEndHour)
	guard := dedup.NewGuard(repository.NewInvocationRepository(redisClient), collector.InvocationStream, dedup.DefaultInterval)
	engine := prediction.NewEngine(collector.OperatingEndHour)
	manager := sheet.NewManager(
		store,
		sheet.NewSlotLayout(collector.OperatingStartHour, collector.OperatingEndHour),
		collector.PredictionTable,
		alertTable.Name,
		collector.Location,
		collectorMetrics,
	)
	dispatcher := alert.NewDispatcher(notifier, repository.NewAlertLimiter(redisClient), collectorMetrics)

	collectService := collect.NewService(
		collector,
		calculator,
		guard,
		snaps.NewClient(cfg.Snaps),
		engine,
		manager,
		dispatcher,
		recorder,
		collectorMetrics,
	)
	collectHandler := handler.NewCollectHandler(collectService, calculator)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     serviceModule,
		TracerName: "github.com/KasumiMercury/traffic-count-collector/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if jobName := c.Request.Header.Get("X-CloudScheduler-JobName"); jobName != "" {
				return jobName
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, Version).
		WithDependency("tabular", store)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/collect", collectHandler.HandleCollect)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", collector.Location.String()),
			slog.Int("operating_start_hour", collector.OperatingStartHour),
			slog.Int("operating_end_hour", collector.OperatingEndHour),
			slog.Int("stations", len(collector.Stations)),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := recorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush measurement recorder", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
