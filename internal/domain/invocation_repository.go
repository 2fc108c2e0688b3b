package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=invocation_repository.go -destination=invocation_repository_mock.go -package=domain

type InvocationRepository interface {
	HasMarker(ctx context.Context, marker InvocationMarker) (bool, error)
	SaveMarker(ctx context.Context, marker InvocationMarker) error
}

// AlertLimiter grants at most one permit per key within the period. Release
// returns a permit whose alert was never delivered.
type AlertLimiter interface {
	Allow(ctx context.Context, key string, period time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
