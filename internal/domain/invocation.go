package domain

import (
	"time"
)

const invocationBucketLayout = "2006-01-02-15-04"

// InvocationMarker identifies one scheduled interval of a collection stream.
type InvocationMarker struct {
	Stream string
	Bucket time.Time
}

// NewInvocationMarker rounds now down to the interval width in now's location.
// interval must divide an hour.
func NewInvocationMarker(stream string, now time.Time, interval time.Duration) InvocationMarker {
	width := int(interval / time.Minute)
	if width <= 0 {
		width = 1
	}
	bucket := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute()-now.Minute()%width, 0, 0, now.Location())
	return InvocationMarker{Stream: stream, Bucket: bucket}
}

func (m InvocationMarker) Key() string {
	return m.Stream + ":" + m.Bucket.Format(invocationBucketLayout)
}

type Outcome string

const (
	OutcomeCompleted             Outcome = "completed"
	OutcomeSkippedDuplicate      Outcome = "skipped_duplicate"
	OutcomeOutsideOperatingHours Outcome = "outside_operating_hours"
)

func (o Outcome) String() string {
	return string(o)
}
