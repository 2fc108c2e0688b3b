//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/notifier"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/logging"
)

func initNotifier(_ context.Context, cfg *config.Config) (domain.Notifier, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, notifications are only logged")

		n := notifier.NewLogNotifier()
		return n, n.Close, nil
	}

	n := notifier.NewTasksNotifier(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.NotifyTargetURL,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("notifier initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return n, n.Close, nil
}

func initObservability(ctx context.Context, level slog.Leveler) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "traffic-count-collector"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      level,
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
