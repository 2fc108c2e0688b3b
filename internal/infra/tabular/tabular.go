package tabular

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// Store is a TabularStore backend that can be health checked and released.
type Store interface {
	domain.TabularStore
	Ping(ctx context.Context) error
	Close() error
}

func New(ctx context.Context, cfg *config.TabularConfig, redisClient *redis.Client) (Store, error) {
	switch cfg.Backend {
	case config.TabularBackendMemory:
		return NewMemoryStore(), nil
	case config.TabularBackendRedis:
		if redisClient == nil {
			return nil, ErrRedisClientMissing
		}
		return NewRedisStore(redisClient), nil
	case config.TabularBackendPostgres:
		db, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(ctx, db)
	case config.TabularBackendSheets:
		return NewSheetsStore(ctx, cfg.GoogleSheetID)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownTabularBackend, cfg.Backend)
	}
}

// setCell returns row with col set to value, growing it as needed.
func setCell(row domain.Row, col int, value string) domain.Row {
	if col >= len(row) {
		grown := make(domain.Row, col+1)
		copy(grown, row)
		row = grown
	}
	row[col] = value
	return row
}

// rowOffset converts a 1-based sheet row number into an offset from the top row.
func rowOffset(rowNumber int) (int, error) {
	offset := rowNumber - domain.TopRowNumber
	if offset < 0 {
		return 0, fmt.Errorf("%w: row %d is above the first data row", domain.ErrInvalidCellRef, rowNumber)
	}
	return offset, nil
}

func cloneRow(row domain.Row) domain.Row {
	out := make(domain.Row, len(row))
	copy(out, row)
	return out
}
