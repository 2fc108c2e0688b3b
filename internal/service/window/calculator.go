package window

import (
	"errors"
	"strings"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	DefaultLag              = 20 * time.Minute
	DefaultPeriod           = 15 * time.Minute
	DefaultObservationDelay = 5 * time.Minute
)

var ErrInvalidOverride = errors.New("invalid override timestamp")

var overrideLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04"}

// Windows is the per-invocation timing context.
type Windows struct {
	Now              time.Time                `json:"now"`
	Recent           domain.MeasurementWindow `json:"recent_window"`
	TodayElapsed     domain.MeasurementWindow `json:"today_elapsed_window"`
	InOperatingHours bool                     `json:"in_operating_hours"`
	LocalHour        int                      `json:"local_hour"`
	LocalMinute      int                      `json:"local_minute"`
	LocalWeekday     int                      `json:"local_weekday"`
}

type Calculator struct {
	loc              *time.Location
	startHour        int
	endHour          int
	lag              time.Duration
	period           time.Duration
	observationDelay time.Duration
}

func NewCalculator(loc *time.Location, startHour, endHour int) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		loc:              loc,
		startHour:        startHour,
		endHour:          endHour,
		lag:              DefaultLag,
		period:           DefaultPeriod,
		observationDelay: DefaultObservationDelay,
	}
}

// Calculate derives the windows for now. Epoch bounds are UTC; hour, minute and
// weekday are read in the deployment location.
func (c *Calculator) Calculate(now time.Time) Windows {
	local := now.In(c.loc)

	recentStart := local.Add(-c.lag)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	elapsed := local.Add(-c.observationDelay).Sub(midnight)
	if elapsed < 0 {
		elapsed = 0
	}

	hour := local.Hour()

	return Windows{
		Now:              local,
		Recent:           domain.NewMeasurementWindow(recentStart, c.period),
		TodayElapsed:     domain.NewMeasurementWindow(midnight, elapsed),
		InOperatingHours: hour >= c.startHour && hour <= c.endHour,
		LocalHour:        hour,
		LocalMinute:      local.Minute(),
		LocalWeekday:     MondayFirst(local.Weekday()),
	}
}

// ParseOverride reads an override timestamp in the deployment location.
// RFC 3339 values keep their own offset.
func (c *Calculator) ParseOverride(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(c.loc), nil
	}
	for _, layout := range overrideLayouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidOverride
}

// MondayFirst maps time.Weekday to 0=Monday..6=Sunday.
func MondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
