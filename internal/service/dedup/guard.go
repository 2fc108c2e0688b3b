package dedup

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const DefaultInterval = 15 * time.Minute

// Guard suppresses repeated triggers for one scheduled interval. The check and
// the record are separate calls, so truly concurrent triggers may both pass.
type Guard struct {
	repo     domain.InvocationRepository
	stream   string
	interval time.Duration
}

func NewGuard(repo domain.InvocationRepository, stream string, interval time.Duration) *Guard {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Guard{
		repo:     repo,
		stream:   stream,
		interval: interval,
	}
}

func (g *Guard) Marker(now time.Time) domain.InvocationMarker {
	return domain.NewInvocationMarker(g.stream, now, g.interval)
}

// Check reports whether the interval containing now was already processed.
// A repository failure is logged and treated as not processed.
func (g *Guard) Check(ctx context.Context, now time.Time) (domain.InvocationMarker, bool) {
	marker := g.Marker(now)

	exists, err := g.repo.HasMarker(ctx, marker)
	if err != nil {
		slog.WarnContext(ctx, "failed to check invocation marker",
			slog.String("marker", marker.Key()),
			slog.String("error", err.Error()),
		)
		return marker, false
	}

	if exists {
		slog.InfoContext(ctx, "duplicate invocation",
			slog.String("marker", marker.Key()),
		)
	}

	return marker, exists
}

// Record stores marker after a successful run. Only runs that write record a
// marker: a run with writes disabled must not make the scheduled run for the
// same interval skip its writes. Repeated alerts are suppressed by the
// notification dedupe key instead.
func (g *Guard) Record(ctx context.Context, marker domain.InvocationMarker, writeEnabled bool) bool {
	if !writeEnabled {
		slog.DebugContext(ctx, "writes disabled, invocation marker not recorded",
			slog.String("marker", marker.Key()),
		)
		return false
	}

	if err := g.repo.SaveMarker(ctx, marker); err != nil {
		slog.WarnContext(ctx, "failed to save invocation marker",
			slog.String("marker", marker.Key()),
			slog.String("error", err.Error()),
		)
		return false
	}

	return true
}
