package measurementrecorder

import (
	"context"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.MeasurementRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordMeasurements(_ context.Context, _ []domain.MeasurementRecord) error {
	return nil
}

func (n *noopRecorder) RecordForecast(_ context.Context, _ domain.ForecastRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
