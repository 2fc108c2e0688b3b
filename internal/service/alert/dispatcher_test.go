package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

var dispatchAt = time.Date(2019, 10, 4, 8, 3, 0, 0, time.UTC)

func TestDispatcher_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := domain.NewMockNotifier(ctrl)
	n := domain.Notification{Kind: domain.AlertKindTraffic, Subject: "s", Body: "b"}
	notifier.EXPECT().Publish(gomock.Any(), n).Return(nil)

	dispatched, err := NewDispatcher(notifier, nil, nil).Dispatch(context.Background(), n, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dispatched {
		t.Error("expected dispatch")
	}
}

func TestDispatcher_Dispatch_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := domain.NewMockNotifier(ctrl)

	dispatched, err := NewDispatcher(notifier, nil, nil).Dispatch(context.Background(), domain.Notification{Kind: domain.AlertKindTraffic}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispatched {
		t.Error("disabled alerts must not be dispatched")
	}
}

func TestDispatcher_Dispatch_NotifierFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifyErr := errors.New("connection refused")
	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(notifyErr)

	_, err := NewDispatcher(notifier, nil, nil).Dispatch(context.Background(), domain.Notification{Kind: domain.AlertKindTraffic}, true)
	if !errors.Is(err, notifyErr) {
		t.Errorf("expected notifier error, got %v", err)
	}
}

func TestDispatcher_ReportBadData(t *testing.T) {
	tests := []struct {
		name             string
		inOperatingHours bool
		alertEnabled     bool
		setup            func(n *domain.MockNotifier, l *domain.MockAlertLimiter)
		wantNotification bool
	}{
		{
			name:             "outside operating hours",
			inOperatingHours: false,
			alertEnabled:     true,
			setup:            func(n *domain.MockNotifier, l *domain.MockAlertLimiter) {},
		},
		{
			name:             "first report of the hour",
			inOperatingHours: true,
			alertEnabled:     true,
			setup: func(n *domain.MockNotifier, l *domain.MockAlertLimiter) {
				l.EXPECT().Allow(gomock.Any(), operationalLimitKey, time.Hour).Return(true, nil)
				n.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, notification domain.Notification) error {
						if notification.Kind != domain.AlertKindOperational {
							t.Errorf("Kind = %s, want operational", notification.Kind)
						}
						return nil
					})
			},
			wantNotification: true,
		},
		{
			name:             "already reported this hour",
			inOperatingHours: true,
			alertEnabled:     true,
			setup: func(n *domain.MockNotifier, l *domain.MockAlertLimiter) {
				l.EXPECT().Allow(gomock.Any(), operationalLimitKey, time.Hour).Return(false, nil)
			},
		},
		{
			name:             "limiter unavailable",
			inOperatingHours: true,
			alertEnabled:     true,
			setup: func(n *domain.MockNotifier, l *domain.MockAlertLimiter) {
				l.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
			},
		},
		{
			name:             "alerts disabled returns message without claiming",
			inOperatingHours: true,
			alertEnabled:     false,
			setup:            func(n *domain.MockNotifier, l *domain.MockAlertLimiter) {},
			wantNotification: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			notifier := domain.NewMockNotifier(ctrl)
			limiter := domain.NewMockAlertLimiter(ctrl)
			tt.setup(notifier, limiter)

			n, err := NewDispatcher(notifier, limiter, nil).ReportBadData(context.Background(), "bad xml", dispatchAt, tt.inOperatingHours, tt.alertEnabled)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (n != nil) != tt.wantNotification {
				t.Errorf("notification = %+v, want present=%v", n, tt.wantNotification)
			}
		})
	}
}

func TestDispatcher_ReportBadData_PublishFailureReleasesPermit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := domain.NewMockNotifier(ctrl)
	limiter := domain.NewMockAlertLimiter(ctrl)
	publishErr := errors.New("topic unavailable")

	gomock.InOrder(
		limiter.EXPECT().Allow(gomock.Any(), operationalLimitKey, time.Hour).Return(true, nil),
		notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(publishErr),
		limiter.EXPECT().Release(gomock.Any(), operationalLimitKey).Return(nil),
		limiter.EXPECT().Allow(gomock.Any(), operationalLimitKey, time.Hour).Return(true, nil),
		notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
	)

	dispatcher := NewDispatcher(notifier, limiter, nil)

	n, err := dispatcher.ReportBadData(context.Background(), "bad xml", dispatchAt, true, true)
	if !errors.Is(err, publishErr) {
		t.Fatalf("err = %v, want %v", err, publishErr)
	}
	if n != nil {
		t.Errorf("notification = %+v, want none", n)
	}

	n, err = dispatcher.ReportBadData(context.Background(), "bad xml", dispatchAt.Add(15*time.Minute), true, true)
	if err != nil {
		t.Fatalf("retry: unexpected error: %v", err)
	}
	if n == nil {
		t.Error("retry: expected operational alert to be sent")
	}
}
