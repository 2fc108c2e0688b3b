package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const alertLimitKeyPrefix = "collector:alert-limit:"

type alertLimiter struct {
	client *redis.Client
}

func NewAlertLimiter(client *redis.Client) domain.AlertLimiter {
	return &alertLimiter{
		client: client,
	}
}

// Allow claims key for period. Only the first caller within the period is allowed.
func (l *alertLimiter) Allow(ctx context.Context, key string, period time.Duration) (bool, error) {
	if key == "" || period <= 0 {
		return false, ErrInvalidLimiterKey
	}

	ok, err := l.client.SetNX(ctx, alertLimitKeyPrefix+key, time.Now().Unix(), period).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (l *alertLimiter) Release(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidLimiterKey
	}

	return l.client.Del(ctx, alertLimitKeyPrefix+key).Err()
}
