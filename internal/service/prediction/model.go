package prediction

import (
	"math"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	MiddayHour        = 13
	PlausibilityFloor = 150
)

// LinearModel maps an observed running total to a predicted day total.
type LinearModel struct {
	Coefficient float64
	Intercept   float64
}

// Predict rounds half away from zero.
func (m LinearModel) Predict(observed int) int {
	return int(math.Round(float64(observed)*m.Coefficient + m.Intercept))
}

// Fitted on Aug 2018 to Sep 2019 entry counts.
var afternoonModels = map[int]LinearModel{
	16: {Coefficient: 1.01649594, Intercept: 44.91931545628796},
	17: {Coefficient: 1.00662224, Intercept: 17.955353264565133},
}

// Midday entry counts at or above these values signal an over-threshold day.
// Keyed by weekday, 0=Monday.
var middayThresholds = map[int]int{
	0: 222,
	1: 220,
	2: 211,
}

func ModelFor(hour int) (LinearModel, bool) {
	m, ok := afternoonModels[hour]
	return m, ok
}

func MiddayThreshold(weekday int) (int, bool) {
	th, ok := middayThresholds[weekday]
	return th, ok
}

// Predict maps an observed running total to a forecast. observed must be
// available; a total below PlausibilityFloor or an unmodeled hour or weekday
// returns the actual-only forecast with domain.ErrPredictionNotApplicable.
func Predict(hour, weekday, observed int) (domain.Forecast, error) {
	forecast := domain.NewForecast(observed)

	if observed < PlausibilityFloor {
		return forecast, domain.ErrPredictionNotApplicable
	}

	if m, ok := ModelFor(hour); ok {
		return forecast.WithPrediction(m.Predict(observed)), nil
	}

	if hour == MiddayHour {
		threshold, ok := MiddayThreshold(weekday)
		if !ok || observed < threshold {
			return forecast, domain.ErrPredictionNotApplicable
		}
		return forecast.WithPrediction(domain.OverThresholdSignal), nil
	}

	return forecast, domain.ErrPredictionNotApplicable
}
