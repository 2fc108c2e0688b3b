package notifier

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code from task queue")
)
