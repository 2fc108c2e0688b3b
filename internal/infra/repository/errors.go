package repository

import "errors"

var (
	ErrInvalidMarkerData = errors.New("invalid invocation marker data")
	ErrInvalidLimiterKey = errors.New("invalid alert limiter key")
)
