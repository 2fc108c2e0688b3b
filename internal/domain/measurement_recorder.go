package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=measurement_recorder.go -destination=measurement_recorder_mock.go -package=domain

// MeasurementRecord is one lane volume observed in one window.
type MeasurementRecord struct {
	RunID           string
	WindowStart     time.Time
	DurationSeconds int64
	StationGroup    string
	StationID       string
	Lane            string
	Volume          int
}

type ForecastRecord struct {
	RunID      string
	At         time.Time
	Key        string
	HourMarker string
	Actual     int
	Predicted  int
	HasPredict bool
}

// MeasurementRecorder stores observations in a time-series sink. It is
// auxiliary to the tables and its failures never fail an invocation.
type MeasurementRecorder interface {
	RecordMeasurements(ctx context.Context, records []MeasurementRecord) error
	RecordForecast(ctx context.Context, record ForecastRecord) error
	Flush(ctx context.Context) error
	Close() error
}
