package tabular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

const (
	tableKeyPrefix = "collector:table:"

	maxUpdateAttempts = 3
)

// RedisStore keeps each table as a list of JSON encoded rows, newest at index 0.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (s *RedisStore) ReadTopRow(ctx context.Context, table string) (domain.Row, error) {
	key := tableKeyPrefix + table

	ctx, span := tracing.StartRedisOperationSpan(ctx, "lindex", key)
	defer span.End()

	data, err := s.client.LIndex(ctx, key, 0).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrEmptyTable
		}
		tracing.RecordResult(span, err)
		return nil, err
	}

	return decodeRow(data)
}

func (s *RedisStore) UpdateCell(ctx context.Context, table, cellRef, value string) error {
	col, rowNumber, err := domain.ParseCellRef(cellRef)
	if err != nil {
		return err
	}
	offset, err := rowOffset(rowNumber)
	if err != nil {
		return err
	}

	key := tableKeyPrefix + table

	ctx, span := tracing.StartRedisOperationSpan(ctx, "lset", key)
	defer span.End()

	update := func(tx *redis.Tx) error {
		data, err := tx.LIndex(ctx, key, int64(offset)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s!%s", ErrRowNotFound, table, cellRef)
			}
			return err
		}

		row, err := decodeRow(data)
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(setCell(row, col, value))
		if err != nil {
			return ErrInvalidRowData
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, int64(offset), encoded)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err = s.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	tracing.RecordResult(span, err)
	return err
}

func (s *RedisStore) InsertRowAtTop(ctx context.Context, table string, row domain.Row) error {
	key := tableKeyPrefix + table

	ctx, span := tracing.StartRedisOperationSpan(ctx, "lpush", key)
	defer span.End()

	encoded, err := json.Marshal(row)
	if err != nil {
		return ErrInvalidRowData
	}

	err = s.client.LPush(ctx, key, encoded).Err()
	tracing.RecordResult(span, err)
	return err
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close leaves the shared client open.
func (s *RedisStore) Close() error {
	return nil
}

func decodeRow(data []byte) (domain.Row, error) {
	var row domain.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, ErrInvalidRowData
	}
	return row, nil
}
