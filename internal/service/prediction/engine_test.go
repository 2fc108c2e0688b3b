package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

func TestEngine_Checkpoint(t *testing.T) {
	engine := NewEngine(18)

	tests := []struct {
		name     string
		hour     int
		minute   int
		weekday  int
		expected domain.HourMarker
		ok       bool
	}{
		{name: "monday midday", hour: 13, minute: 5, weekday: 0, expected: domain.HourMarkerMidday, ok: true},
		{name: "thursday midday", hour: 13, minute: 5, weekday: 3},
		{name: "friday 4pm", hour: 16, minute: 10, weekday: 4, expected: domain.HourMarkerAfternoon1, ok: true},
		{name: "tuesday 5pm", hour: 17, minute: 0, weekday: 1, expected: domain.HourMarkerAfternoon2, ok: true},
		{name: "end of day", hour: 18, minute: 14, weekday: 2, expected: domain.HourMarkerEndOfDay, ok: true},
		{name: "second slot of hour", hour: 16, minute: 15, weekday: 0},
		{name: "saturday", hour: 16, minute: 0, weekday: 5},
		{name: "morning", hour: 9, minute: 0, weekday: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, ok := engine.Checkpoint(tt.hour, tt.minute, tt.weekday)
			if ok != tt.ok || marker != tt.expected {
				t.Errorf("Checkpoint() = %q, %v; want %q, %v", marker, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestEngine_Forecast_UsesLiveTotal(t *testing.T) {
	engine := NewEngine(18)
	fallbackCalled := false

	forecast, err := engine.Forecast(context.Background(), domain.HourMarkerAfternoon1, 16, 0, Observed(250),
		func(ctx context.Context) (int, error) {
			fallbackCalled = true
			return 0, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fallbackCalled {
		t.Error("fallback must not run when the live total is available")
	}
	if got, _ := forecast.PredictedValue(); got != 299 {
		t.Errorf("Predicted = %d, want 299", got)
	}
}

func TestEngine_Forecast_RecoversOnce(t *testing.T) {
	engine := NewEngine(18)
	calls := 0

	forecast, err := engine.Forecast(context.Background(), domain.HourMarkerAfternoon2, 17, 0, Observed(-1),
		func(ctx context.Context) (int, error) {
			calls++
			return 360, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fallback called %d times, want 1", calls)
	}
	if forecast.Actual != 360 {
		t.Errorf("Actual = %d, want 360", forecast.Actual)
	}
	if got, _ := forecast.PredictedValue(); got != 380 {
		t.Errorf("Predicted = %d, want 380", got)
	}
}

func TestEngine_Forecast_RecoveryExhausted(t *testing.T) {
	engine := NewEngine(18)

	forecast, err := engine.Forecast(context.Background(), domain.HourMarkerAfternoon1, 16, 0, Unavailable(),
		func(ctx context.Context) (int, error) {
			return 0, errors.New("store unreachable")
		})
	if !errors.Is(err, domain.ErrRecoveryExhausted) {
		t.Fatalf("expected ErrRecoveryExhausted, got %v", err)
	}
	if forecast.HasPrediction() {
		t.Error("no prediction may be produced after failed recovery")
	}

	if _, err := engine.Forecast(context.Background(), domain.HourMarkerAfternoon1, 16, 0, Unavailable(), nil); !errors.Is(err, domain.ErrRecoveryExhausted) {
		t.Errorf("nil fallback: expected ErrRecoveryExhausted, got %v", err)
	}
}

func TestEngine_Forecast_EndOfDay(t *testing.T) {
	engine := NewEngine(18)

	forecast, err := engine.Forecast(context.Background(), domain.HourMarkerEndOfDay, 18, 2, Observed(420), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecast.Actual != 420 || forecast.HasPrediction() {
		t.Errorf("forecast = %+v, want actual-only 420", forecast)
	}

	_, err = engine.Forecast(context.Background(), domain.HourMarkerEndOfDay, 18, 2, Observed(80), nil)
	if !errors.Is(err, domain.ErrPredictionNotApplicable) {
		t.Errorf("expected ErrPredictionNotApplicable below floor, got %v", err)
	}
}

func TestRecoverTotal(t *testing.T) {
	date := time.Date(2019, 10, 4, 0, 0, 0, 0, time.UTC)
	record := func(values ...int) domain.DailyRecord {
		rec := domain.DailyRecord{Date: date}
		for i, v := range values {
			rec.SlotValues = append(rec.SlotValues, domain.SlotValue{SlotIndex: i + 2, Value: v})
		}
		return rec
	}

	tests := []struct {
		name     string
		record   domain.DailyRecord
		expected int
		slots    int
		wantErr  bool
	}{
		{name: "fully populated", record: record(10, 20, 30, 40), slots: 4, expected: 100},
		{name: "three of four populated", record: record(10, 20, 30), slots: 4, expected: 60},
		{name: "half populated", record: record(10, 20), slots: 4, wantErr: true},
		{name: "empty record", record: record(), slots: 0, wantErr: true},
		{name: "first slot of day", record: record(12), slots: 0, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := RecoverTotal(tt.record, tt.slots)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrRecoveryExhausted) {
					t.Fatalf("expected ErrRecoveryExhausted, got %v", err)
				}
				var coverage *CoverageError
				if !errors.As(err, &coverage) {
					t.Errorf("expected CoverageError in %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tt.expected {
				t.Errorf("total = %d, want %d", total, tt.expected)
			}
		})
	}
}
