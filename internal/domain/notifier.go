package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type Notifier interface {
	Publish(ctx context.Context, notification Notification) error
}
