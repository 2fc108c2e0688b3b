//go:build gcloud

package measurementrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

type laneCountRow struct {
	RecordedAt      time.Time `bigquery:"recorded_at"`
	RunID           string    `bigquery:"run_id"`
	WindowStart     time.Time `bigquery:"window_start"`
	DurationSeconds int64     `bigquery:"duration_seconds"`
	StationGroup    string    `bigquery:"station_group"`
	StationID       string    `bigquery:"station_id"`
	Lane            string    `bigquery:"lane"`
	Volume          int64     `bigquery:"volume"`
}

type forecastRow struct {
	RecordedAt time.Time          `bigquery:"recorded_at"`
	RunID      string             `bigquery:"run_id"`
	At         time.Time          `bigquery:"at"`
	Key        string             `bigquery:"key"`
	HourMarker string             `bigquery:"hour_marker"`
	Actual     int64              `bigquery:"actual"`
	Predicted  bigquery.NullInt64 `bigquery:"predicted"`
}

type bigQueryRecorder struct {
	client           *bigquery.Client
	inserter         *bigquery.Inserter
	forecastInserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.MeasurementRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "measurement recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, measurement recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, measurement recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "measurement recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
		slog.String("forecast_table", cfg.BigQueryForecastTable),
	)

	return &bigQueryRecorder{
		client:           client,
		inserter:         dataset.Table(cfg.BigQueryTable).Inserter(),
		forecastInserter: dataset.Table(cfg.BigQueryForecastTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordMeasurements(ctx context.Context, records []domain.MeasurementRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*laneCountRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &laneCountRow{
			RecordedAt:      now,
			RunID:           record.RunID,
			WindowStart:     record.WindowStart,
			DurationSeconds: record.DurationSeconds,
			StationGroup:    record.StationGroup,
			StationID:       record.StationID,
			Lane:            record.Lane,
			Volume:          int64(record.Volume),
		})
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert lane counts to BigQuery: %w", err)
	}

	return nil
}

func (r *bigQueryRecorder) RecordForecast(ctx context.Context, record domain.ForecastRecord) error {
	row := &forecastRow{
		RecordedAt: time.Now(),
		RunID:      record.RunID,
		At:         record.At,
		Key:        record.Key,
		HourMarker: record.HourMarker,
		Actual:     int64(record.Actual),
		Predicted:  bigquery.NullInt64{Int64: int64(record.Predicted), Valid: record.HasPredict},
	}

	if err := r.forecastInserter.Put(ctx, row); err != nil {
		return fmt.Errorf("failed to insert forecast to BigQuery: %w", err)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
