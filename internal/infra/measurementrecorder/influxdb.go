//go:build !gcloud

package measurementrecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	countMeasurement    = "traffic_count"
	forecastMeasurement = "traffic_forecast"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.MeasurementRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "measurement recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, measurement recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "measurement recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// RecordMeasurements writes one point per lane, stamped with the window
// start so a repeated window overwrites its earlier points.
func (r *influxDBRecorder) RecordMeasurements(ctx context.Context, records []domain.MeasurementRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, influxdb2.NewPoint(
			countMeasurement,
			map[string]string{
				"run_id":        runIDOrDefault(record.RunID),
				"station_group": record.StationGroup,
				"station_id":    record.StationID,
				"lane":          record.Lane,
			},
			map[string]any{
				"volume":           record.Volume,
				"duration_seconds": record.DurationSeconds,
			},
			record.WindowStart,
		))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write measurements to InfluxDB: %w", err)
	}

	return nil
}

func (r *influxDBRecorder) RecordForecast(ctx context.Context, record domain.ForecastRecord) error {
	fields := map[string]any{
		"actual": record.Actual,
	}
	if record.HasPredict {
		fields["predicted"] = record.Predicted
	}

	point := influxdb2.NewPoint(
		forecastMeasurement,
		map[string]string{
			"run_id":      runIDOrDefault(record.RunID),
			"key":         record.Key,
			"hour_marker": record.HourMarker,
		},
		fields,
		record.At,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("failed to write forecast to InfluxDB: %w", err)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func runIDOrDefault(runID string) string {
	if runID == "" {
		return "default"
	}
	return runID
}
