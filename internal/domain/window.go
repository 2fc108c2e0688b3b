package domain

import "time"

// MeasurementWindow is a sampling window in UTC epoch seconds.
type MeasurementWindow struct {
	StartEpochUTC   int64 `json:"start_epoch_utc"`
	DurationSeconds int64 `json:"duration_seconds"`
}

func NewMeasurementWindow(start time.Time, duration time.Duration) MeasurementWindow {
	return MeasurementWindow{
		StartEpochUTC:   start.UTC().Unix(),
		DurationSeconds: int64(duration / time.Second),
	}
}

func (w MeasurementWindow) Start() time.Time {
	return time.Unix(w.StartEpochUTC, 0).UTC()
}

func (w MeasurementWindow) End() time.Time {
	return w.Start().Add(time.Duration(w.DurationSeconds) * time.Second)
}
