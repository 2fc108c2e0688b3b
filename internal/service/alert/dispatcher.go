package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/metrics"
)

const (
	operationalLimitKey    = "operational:bad-data"
	operationalLimitPeriod = time.Hour
)

// Dispatcher hands notifications to the notifier, honouring the caller's
// alertEnabled flag.
type Dispatcher struct {
	notifier domain.Notifier
	limiter  domain.AlertLimiter
	metrics  *metrics.CollectorMetrics
}

func NewDispatcher(notifier domain.Notifier, limiter domain.AlertLimiter, collectorMetrics *metrics.CollectorMetrics) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		limiter:  limiter,
		metrics:  collectorMetrics,
	}
}

// Dispatch publishes n. With alertEnabled false the message is only logged.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification, alertEnabled bool) (bool, error) {
	if !alertEnabled {
		slog.InfoContext(ctx, "skipping alert",
			slog.String("kind", n.Kind.String()),
			slog.String("subject", n.Subject),
			slog.String("body", n.Body),
		)
		d.record(ctx, n.Kind, false)
		return false, nil
	}

	if err := d.notifier.Publish(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to publish alert",
			slog.String("kind", n.Kind.String()),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("failed to publish %s alert: %w", n.Kind, err)
	}

	slog.InfoContext(ctx, "alert published",
		slog.String("kind", n.Kind.String()),
		slog.String("subject", n.Subject),
	)
	d.record(ctx, n.Kind, true)
	return true, nil
}

// ReportBadData raises the operational alert at most once per hour and only
// inside operating hours. Limiter failures suppress the alert. A failed publish
// gives the hourly permit back so the next run can retry.
func (d *Dispatcher) ReportBadData(ctx context.Context, detail string, at time.Time, inOperatingHours, alertEnabled bool) (*domain.Notification, error) {
	if !inOperatingHours {
		return nil, nil
	}

	n := OperationalNotification(detail, at)

	if !alertEnabled {
		_, err := d.Dispatch(ctx, n, false)
		return &n, err
	}

	if d.limiter != nil {
		allowed, err := d.limiter.Allow(ctx, operationalLimitKey, operationalLimitPeriod)
		if err != nil {
			slog.WarnContext(ctx, "operational alert limiter unavailable",
				slog.String("error", err.Error()),
			)
			return nil, nil
		}
		if !allowed {
			slog.DebugContext(ctx, "operational alert already sent this hour")
			return nil, nil
		}
	}

	if _, err := d.Dispatch(ctx, n, true); err != nil {
		d.release(ctx)
		return nil, err
	}
	return &n, nil
}

func (d *Dispatcher) release(ctx context.Context) {
	if d.limiter == nil {
		return
	}
	if err := d.limiter.Release(ctx, operationalLimitKey); err != nil {
		slog.WarnContext(ctx, "failed to release operational alert permit",
			slog.String("error", err.Error()),
		)
	}
}

func (d *Dispatcher) record(ctx context.Context, kind domain.AlertKind, dispatched bool) {
	if d.metrics != nil {
		d.metrics.RecordAlert(ctx, kind.String(), dispatched)
	}
}
