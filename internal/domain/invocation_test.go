package domain

import (
	"testing"
	"time"
)

func TestNewInvocationMarker(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)

	tests := []struct {
		name    string
		now     time.Time
		wantKey string
	}{
		{
			name:    "start of bucket",
			now:     time.Date(2019, 10, 4, 16, 0, 0, 0, loc),
			wantKey: "collect:2019-10-04-16-00",
		},
		{
			name:    "inside bucket",
			now:     time.Date(2019, 10, 4, 16, 14, 59, 999, loc),
			wantKey: "collect:2019-10-04-16-00",
		},
		{
			name:    "next bucket",
			now:     time.Date(2019, 10, 4, 16, 15, 0, 0, loc),
			wantKey: "collect:2019-10-04-16-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewInvocationMarker("collect", tt.now, 15*time.Minute)
			if got.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", got.Key(), tt.wantKey)
			}
		})
	}
}

func TestForecast(t *testing.T) {
	f := NewForecast(230)
	if f.HasPrediction() {
		t.Fatal("HasPrediction() = true for new forecast")
	}

	f = f.WithPrediction(OverThresholdSignal)
	v, ok := f.PredictedValue()
	if !ok || v != OverThresholdSignal {
		t.Errorf("PredictedValue() = (%d, %v), want (%d, true)", v, ok, OverThresholdSignal)
	}
	if !f.IsSignalOnly() {
		t.Error("IsSignalOnly() = false, want true")
	}
}
