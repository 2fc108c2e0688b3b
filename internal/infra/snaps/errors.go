package snaps

import "errors"

var (
	ErrInvalidBaseURL = errors.New("invalid SNAPS base URL")
)
