package prediction

import (
	"errors"
	"testing"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

func TestPredict(t *testing.T) {
	tests := []struct {
		name          string
		hour          int
		weekday       int
		observed      int
		wantPredicted *int
		wantErr       error
	}{
		{
			name:          "4pm linear model",
			hour:          16,
			weekday:       4,
			observed:      250,
			wantPredicted: intPtr(299),
		},
		{
			name:          "5pm linear model",
			hour:          17,
			weekday:       0,
			observed:      360,
			wantPredicted: intPtr(380),
		},
		{
			name:          "midday monday over threshold",
			hour:          13,
			weekday:       0,
			observed:      230,
			wantPredicted: intPtr(domain.OverThresholdSignal),
		},
		{
			name:          "midday wednesday exactly at threshold",
			hour:          13,
			weekday:       2,
			observed:      211,
			wantPredicted: intPtr(domain.OverThresholdSignal),
		},
		{
			name:     "midday tuesday under threshold",
			hour:     13,
			weekday:  1,
			observed: 219,
			wantErr:  domain.ErrPredictionNotApplicable,
		},
		{
			name:     "midday thursday has no model",
			hour:     13,
			weekday:  3,
			observed: 500,
			wantErr:  domain.ErrPredictionNotApplicable,
		},
		{
			name:     "midday below plausibility floor",
			hour:     13,
			weekday:  0,
			observed: 100,
			wantErr:  domain.ErrPredictionNotApplicable,
		},
		{
			name:     "afternoon below plausibility floor",
			hour:     16,
			weekday:  0,
			observed: 149,
			wantErr:  domain.ErrPredictionNotApplicable,
		},
		{
			name:     "unmodeled hour",
			hour:     10,
			weekday:  0,
			observed: 300,
			wantErr:  domain.ErrPredictionNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast, err := Predict(tt.hour, tt.weekday, tt.observed)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Predict error = %v, want %v", err, tt.wantErr)
			}
			if forecast.Actual != tt.observed {
				t.Errorf("Actual = %d, want %d", forecast.Actual, tt.observed)
			}
			got, ok := forecast.PredictedValue()
			if tt.wantPredicted == nil {
				if ok {
					t.Errorf("expected no prediction, got %d", got)
				}
				return
			}
			if !ok || got != *tt.wantPredicted {
				t.Errorf("Predicted = %d (%v), want %d", got, ok, *tt.wantPredicted)
			}
		})
	}
}

func TestPredict_MiddayThresholdBoundary(t *testing.T) {
	for weekday, threshold := range middayThresholds {
		below, _ := Predict(MiddayHour, weekday, threshold-1)
		if below.HasPrediction() {
			t.Errorf("weekday %d: observed %d should not signal", weekday, threshold-1)
		}
		at, _ := Predict(MiddayHour, weekday, threshold)
		if !at.IsSignalOnly() {
			t.Errorf("weekday %d: observed %d should signal", weekday, threshold)
		}
	}
}

func TestPredict_LinearModelMatchesFormula(t *testing.T) {
	for _, hour := range []int{16, 17} {
		m, _ := ModelFor(hour)
		for observed := PlausibilityFloor; observed <= 600; observed += 7 {
			forecast, err := Predict(hour, 0, observed)
			if err != nil {
				t.Fatalf("hour %d observed %d: unexpected error %v", hour, observed, err)
			}
			if got, _ := forecast.PredictedValue(); got != m.Predict(observed) {
				t.Errorf("hour %d observed %d: predicted %d, want %d", hour, observed, got, m.Predict(observed))
			}
		}
	}
}

func TestLinearModel_RoundsHalfAwayFromZero(t *testing.T) {
	m := LinearModel{Coefficient: 1, Intercept: 0.5}

	if got := m.Predict(2); got != 3 {
		t.Errorf("Predict(2) = %d, want 3", got)
	}
	if got := m.Predict(3); got != 4 {
		t.Errorf("Predict(3) = %d, want 4", got)
	}
}

func intPtr(v int) *int {
	return &v
}
