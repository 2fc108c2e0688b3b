package domain

import "time"

type AlertKind string

const (
	AlertKindTraffic     AlertKind = "traffic"
	AlertKindOperational AlertKind = "operational"
)

func (k AlertKind) String() string {
	return string(k)
}

type AlertEvent struct {
	Key         string    `json:"key"`
	Actual      int       `json:"actual"`
	Predicted   int       `json:"predicted"`
	AtLocalTime time.Time `json:"at_local_time"`
}

type Notification struct {
	Kind    AlertKind `json:"kind"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	// DedupeKey identifies the notification for transports that can drop repeats.
	DedupeKey string `json:"dedupe_key,omitempty"`
}
