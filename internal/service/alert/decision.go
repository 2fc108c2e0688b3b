package alert

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	// TimeLayout renders the local time of measurement, e.g. 4:05PM.
	TimeLayout = "3:04PM"

	qualitativeHour = 13

	operationalSubject = "error loading traffic data"
)

// Evaluate returns an alert event when forecast predicts more than
// domain.AlertThreshold entries.
func Evaluate(key string, forecast domain.Forecast, at time.Time) (domain.AlertEvent, bool) {
	predicted, ok := forecast.PredictedValue()
	if !ok || predicted <= domain.AlertThreshold {
		return domain.AlertEvent{}, false
	}

	return domain.AlertEvent{
		Key:         key,
		Actual:      forecast.Actual,
		Predicted:   predicted,
		AtLocalTime: at,
	}, true
}

// TrafficNotification renders event. At the qualitative hour the message only
// states that the threshold will be exceeded.
func TrafficNotification(event domain.AlertEvent) domain.Notification {
	at := event.AtLocalTime.Format(TimeLayout)

	n := domain.Notification{
		Kind:      domain.AlertKindTraffic,
		DedupeKey: fmt.Sprintf("traffic-%s-%s", event.Key, event.AtLocalTime.Format("2006-01-02-15")),
	}

	if event.AtLocalTime.Hour() == qualitativeHour {
		n.Subject = fmt.Sprintf("WARNING: high car count predicted as of %s", event.Key)
		n.Body = fmt.Sprintf("WARNING: %d cars measured at %s as of %s. Over %d entries predicted.",
			event.Actual, event.Key, at, domain.AlertThreshold)
		return n
	}

	n.Subject = fmt.Sprintf("WARNING: high car count: %d predicted as of %s", event.Predicted, event.Key)
	n.Body = fmt.Sprintf("WARNING: %d cars measured at %s as of %s. %d cars predicted.",
		event.Actual, event.Key, at, event.Predicted)
	return n
}

// OperationalNotification reports a malformed or missing count feed.
func OperationalNotification(detail string, at time.Time) domain.Notification {
	return domain.Notification{
		Kind:      domain.AlertKindOperational,
		Subject:   operationalSubject,
		Body:      "received bad data from SNAPS:\n\n" + detail,
		DedupeKey: "operational-" + at.Format("2006-01-02-15"),
	}
}
