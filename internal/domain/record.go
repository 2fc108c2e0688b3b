package domain

import (
	"strconv"
	"strings"
	"time"
)

// SheetDateLayout is the M/D/YY date format used in column A of every table.
const SheetDateLayout = "1/2/06"

var sheetDateLayouts = []string{SheetDateLayout, "1/2/2006", "2006-01-02", "01/02/06"}

func FormatSheetDate(t time.Time) string {
	return t.Format(SheetDateLayout)
}

// ParseSheetDate parses a date cell in the location loc.
func ParseSheetDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameDate compares calendar dates of a and b in a's location.
func SameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Row is one table row as stored: column 0 is the date, column 1 the total.
type Row []string

func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func (r Row) Date() string {
	return r.Cell(0)
}

type SlotValue struct {
	SlotIndex int `json:"slot_index"`
	Value     int `json:"value"`
}

type DailyRecord struct {
	Date       time.Time   `json:"date"`
	SlotValues []SlotValue `json:"slot_values"`
}

// DailyRecordFromRow reads populated slot cells from firstSlot onwards. Blank and
// non-numeric cells are skipped.
func DailyRecordFromRow(row Row, date time.Time, firstSlot int) DailyRecord {
	rec := DailyRecord{Date: date}
	for col := firstSlot; col < len(row); col++ {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := strconv.Atoi(cell)
		if err != nil {
			continue
		}
		rec.SlotValues = append(rec.SlotValues, SlotValue{SlotIndex: col, Value: v})
	}
	return rec
}

func (d DailyRecord) Total() int {
	total := 0
	for _, sv := range d.SlotValues {
		total += sv.Value
	}
	return total
}

// HourMarker names a fixed prediction checkpoint of the day.
type HourMarker string

const (
	HourMarkerMidday     HourMarker = "midday"
	HourMarkerAfternoon1 HourMarker = "afternoon1"
	HourMarkerAfternoon2 HourMarker = "afternoon2"
	HourMarkerEndOfDay   HourMarker = "end_of_day"
)

func (m HourMarker) String() string {
	return string(m)
}
