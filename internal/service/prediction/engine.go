package prediction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// MinRecoveryCoverage is the share of elapsed slots that must be populated
// before a persisted running total is trusted.
const MinRecoveryCoverage = 0.75

// Observation is an elapsed-day total as reported by the count source.
type Observation struct {
	Total     int
	Available bool
}

func Observed(total int) Observation {
	if total < 0 {
		return Observation{}
	}
	return Observation{Total: total, Available: true}
}

func Unavailable() Observation {
	return Observation{}
}

// RecoverFunc reconstructs a running total from persisted data.
type RecoverFunc func(ctx context.Context) (int, error)

type Engine struct {
	endOfDayHour int
}

func NewEngine(endOfDayHour int) *Engine {
	return &Engine{endOfDayHour: endOfDayHour}
}

// Checkpoint reports which prediction marker, if any, the local time falls on.
// Checkpoints are only taken on weekdays in the first slot of the hour.
func (e *Engine) Checkpoint(hour, minute, weekday int) (domain.HourMarker, bool) {
	if weekday > 4 || minute >= 15 {
		return "", false
	}

	switch hour {
	case MiddayHour:
		if _, ok := MiddayThreshold(weekday); ok {
			return domain.HourMarkerMidday, true
		}
	case 16:
		return domain.HourMarkerAfternoon1, true
	case 17:
		return domain.HourMarkerAfternoon2, true
	case e.endOfDayHour:
		return domain.HourMarkerEndOfDay, true
	}

	return "", false
}

// Forecast resolves the observed total, calling fallback once when the
// live total is unavailable, and applies the model for marker.
func (e *Engine) Forecast(
	ctx context.Context,
	marker domain.HourMarker,
	hour, weekday int,
	obs Observation,
	fallback RecoverFunc,
) (domain.Forecast, error) {
	total := obs.Total
	if !obs.Available {
		if fallback == nil {
			return domain.Forecast{}, domain.ErrRecoveryExhausted
		}
		recovered, err := fallback(ctx)
		if err != nil {
			slog.DebugContext(ctx, "running total recovery failed",
				slog.String("error", err.Error()),
			)
			return domain.Forecast{}, domain.ErrRecoveryExhausted
		}
		slog.InfoContext(ctx, "recovered running total from persisted slots",
			slog.Int("total", recovered),
		)
		total = recovered
	}

	if marker == domain.HourMarkerEndOfDay {
		forecast := domain.NewForecast(total)
		if total < PlausibilityFloor {
			return forecast, domain.ErrPredictionNotApplicable
		}
		return forecast, nil
	}

	return Predict(hour, weekday, total)
}

// RecoverTotal sums today's persisted slot values. expectedSlots is the number
// of slots that should already hold a value.
func RecoverTotal(record domain.DailyRecord, expectedSlots int) (int, error) {
	if expectedSlots < 1 {
		expectedSlots = 1
	}

	populated := len(record.SlotValues)
	if populated == 0 || float64(populated) < MinRecoveryCoverage*float64(expectedSlots) {
		return 0, errors.Join(domain.ErrRecoveryExhausted, &CoverageError{Populated: populated, Expected: expectedSlots})
	}

	return record.Total(), nil
}
