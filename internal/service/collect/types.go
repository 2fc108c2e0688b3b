package collect

import (
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/sheet"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/window"
)

// Request is one trigger of the collector.
type Request struct {
	Now          time.Time
	WriteEnabled bool
	AlertEnabled bool
	RunID        string
}

type Result struct {
	RunID            string                       `json:"run_id,omitempty"`
	Outcome          domain.Outcome               `json:"outcome"`
	Marker           string                       `json:"marker,omitempty"`
	Windows          window.Windows               `json:"windows"`
	Observations     []*domain.StationObservation `json:"observations,omitempty"`
	HourMarker       domain.HourMarker            `json:"hour_marker,omitempty"`
	Forecast         *domain.Forecast             `json:"forecast,omitempty"`
	Alert            *domain.Notification         `json:"alert,omitempty"`
	AlertDispatched  bool                         `json:"alert_dispatched"`
	OperationalAlert *domain.Notification         `json:"operational_alert,omitempty"`
	Writes           []sheet.Write                `json:"writes,omitempty"`
	MarkerRecorded   bool                         `json:"marker_recorded"`
}

// AppliedWrites counts the writes that reached the store.
func (r *Result) AppliedWrites() int {
	n := 0
	for _, w := range r.Writes {
		if w.Applied {
			n++
		}
	}
	return n
}
