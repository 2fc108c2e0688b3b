package domain

import "context"

//go:generate mockgen -source=count_source.go -destination=count_source_mock.go -package=domain

// CountSource returns per-lane volumes for a station over a window. A malformed
// or missing response is reported as an error wrapping ErrDataUnavailable.
type CountSource interface {
	FetchCounts(ctx context.Context, stationID string, window MeasurementWindow) (LaneCounts, error)
}
