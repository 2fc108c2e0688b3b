package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

const (
	invocationKeyPrefix = "collector:invocation:"

	invocationMarkerTTL = 24 * time.Hour
)

type markerRecord struct {
	Stream     string    `json:"stream"`
	Bucket     time.Time `json:"bucket"`
	RecordedAt time.Time `json:"recorded_at"`
}

type invocationRepository struct {
	client *redis.Client
}

func NewInvocationRepository(client *redis.Client) domain.InvocationRepository {
	return &invocationRepository{
		client: client,
	}
}

func (r *invocationRepository) HasMarker(ctx context.Context, marker domain.InvocationMarker) (bool, error) {
	key := invocationKeyPrefix + marker.Key()

	ctx, span := tracing.StartRedisOperationSpan(ctx, "exists", key)
	defer span.End()

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		tracing.RecordResult(span, err)
		return false, err
	}

	return exists > 0, nil
}

func (r *invocationRepository) SaveMarker(ctx context.Context, marker domain.InvocationMarker) error {
	if marker.Stream == "" || marker.Bucket.IsZero() {
		return ErrInvalidMarkerData
	}

	key := invocationKeyPrefix + marker.Key()

	ctx, span := tracing.StartRedisOperationSpan(ctx, "set", key)
	defer span.End()

	data, err := json.Marshal(markerRecord{
		Stream:     marker.Stream,
		Bucket:     marker.Bucket,
		RecordedAt: time.Now(),
	})
	if err != nil {
		return ErrInvalidMarkerData
	}

	err = r.client.Set(ctx, key, data, invocationMarkerTTL).Err()
	tracing.RecordResult(span, err)
	return err
}
