package domain

import (
	"testing"
	"time"
)

func TestParseSheetDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name  string
		value string
		ok    bool
		want  time.Time
	}{
		{name: "short year", value: "10/4/19", ok: true, want: time.Date(2019, 10, 4, 0, 0, 0, 0, loc)},
		{name: "long year", value: "10/4/2019", ok: true, want: time.Date(2019, 10, 4, 0, 0, 0, 0, loc)},
		{name: "iso", value: "2019-10-04", ok: true, want: time.Date(2019, 10, 4, 0, 0, 0, 0, loc)},
		{name: "padded whitespace", value: " 1/2/20 ", ok: true, want: time.Date(2020, 1, 2, 0, 0, 0, 0, loc)},
		{name: "empty", value: "", ok: false},
		{name: "garbage", value: "date", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSheetDate(tt.value, loc)
			if ok != tt.ok {
				t.Fatalf("ParseSheetDate(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseSheetDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatSheetDate(t *testing.T) {
	got := FormatSheetDate(time.Date(2019, 10, 4, 16, 10, 0, 0, time.UTC))
	if got != "10/4/19" {
		t.Errorf("FormatSheetDate() = %q, want %q", got, "10/4/19")
	}
}

func TestDailyRecordFromRow(t *testing.T) {
	row := Row{"10/4/19", "=sum(C2:BF2)", "12", "", "30", "n/a", "8"}
	rec := DailyRecordFromRow(row, time.Date(2019, 10, 4, 0, 0, 0, 0, time.UTC), 2)

	if len(rec.SlotValues) != 3 {
		t.Fatalf("SlotValues len = %d, want 3", len(rec.SlotValues))
	}
	if rec.SlotValues[1].SlotIndex != 4 || rec.SlotValues[1].Value != 30 {
		t.Errorf("SlotValues[1] = %+v, want {4 30}", rec.SlotValues[1])
	}
	if rec.Total() != 50 {
		t.Errorf("Total() = %d, want 50", rec.Total())
	}
}

func TestSameDate(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	a := time.Date(2019, 10, 4, 23, 30, 0, 0, loc)
	// 06:30 UTC on the 5th is still the 4th in PDT.
	b := time.Date(2019, 10, 5, 6, 30, 0, 0, time.UTC)
	if !SameDate(a, b) {
		t.Error("SameDate() = false, want true")
	}
	if SameDate(a, a.Add(time.Hour)) {
		t.Error("SameDate() across midnight = true, want false")
	}
}
