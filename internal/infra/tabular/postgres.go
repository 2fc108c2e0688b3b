package tabular

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// tableRow is one row of a named table. Higher positions are newer.
type tableRow struct {
	ID       uint       `gorm:"primaryKey"`
	Sheet    string     `gorm:"column:sheet;not null;uniqueIndex:idx_sheet_position,priority:1"`
	Position int64      `gorm:"column:position;not null;uniqueIndex:idx_sheet_position,priority:2"`
	Cells    domain.Row `gorm:"column:cells;type:jsonb;serializer:json"`
}

func (tableRow) TableName() string {
	return "tabular_rows"
}

type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

func NewPostgresStore(ctx context.Context, db *gorm.DB) (*PostgresStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&tableRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tabular rows: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ReadTopRow(ctx context.Context, table string) (domain.Row, error) {
	var top tableRow
	err := s.db.WithContext(ctx).
		Where("sheet = ?", table).
		Order("position DESC").
		First(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmptyTable
		}
		return nil, err
	}
	return top.Cells, nil
}

func (s *PostgresStore) UpdateCell(ctx context.Context, table, cellRef, value string) error {
	col, rowNumber, err := domain.ParseCellRef(cellRef)
	if err != nil {
		return err
	}
	offset, err := rowOffset(rowNumber)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target tableRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sheet = ?", table).
			Order("position DESC").
			Offset(offset).
			First(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s!%s", ErrRowNotFound, table, cellRef)
			}
			return err
		}

		target.Cells = setCell(target.Cells, col, value)
		return tx.Save(&target).Error
	})
}

func (s *PostgresStore) InsertRowAtTop(ctx context.Context, table string, row domain.Row) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int64
		err := tx.Model(&tableRow{}).
			Where("sheet = ?", table).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}

		return tx.Create(&tableRow{
			Sheet:    table,
			Position: maxPosition + 1,
			Cells:    cloneRow(row),
		}).Error
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
