package sheet

import (
	"fmt"
	"strconv"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	DateColumn      = 0
	TotalColumn     = 1
	FirstSlotColumn = 2

	DefaultSlotWidth = 15 * time.Minute
)

// SlotIndex maps a local time of day to its slot column. The first slot of
// startHour is FirstSlotColumn; sheetWidth bounds the result.
func SlotIndex(hour, minute, startHour int, slotWidth time.Duration, sheetWidth int) (int, error) {
	width := int(slotWidth / time.Minute)
	if width <= 0 || 60%width != 0 {
		return 0, fmt.Errorf("%w: slot width %s", ErrInvalidLayout, slotWidth)
	}
	if hour < startHour || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrSlotOutOfRange, hour, minute)
	}

	col := (hour-startHour)*(60/width) + minute/width + FirstSlotColumn
	if col >= sheetWidth {
		return 0, fmt.Errorf("%w: %02d:%02d maps to column %d of %d", ErrSlotOutOfRange, hour, minute, col, sheetWidth)
	}
	return col, nil
}

// SlotLayout describes a lane table: date, total, then one column per slot
// from StartHour through the end of EndHour.
type SlotLayout struct {
	StartHour int
	EndHour   int
	SlotWidth time.Duration
}

func NewSlotLayout(startHour, endHour int) SlotLayout {
	return SlotLayout{
		StartHour: startHour,
		EndHour:   endHour,
		SlotWidth: DefaultSlotWidth,
	}
}

func (l SlotLayout) SlotsPerHour() int {
	return int(time.Hour / l.SlotWidth)
}

func (l SlotLayout) Width() int {
	return FirstSlotColumn + (l.EndHour-l.StartHour+1)*l.SlotsPerHour()
}

func (l SlotLayout) LastSlotColumn() int {
	return l.Width() - 1
}

func (l SlotLayout) SlotIndex(hour, minute int) (int, error) {
	return SlotIndex(hour, minute, l.StartHour, l.SlotWidth, l.Width())
}

// ElapsedSlots counts the slots of today before the one containing hour:minute.
func (l SlotLayout) ElapsedSlots(hour, minute int) int {
	col, err := l.SlotIndex(hour, minute)
	if err != nil {
		if hour > l.EndHour {
			return l.Width() - FirstSlotColumn
		}
		return 0
	}
	return col - FirstSlotColumn
}

func (l SlotLayout) TotalFormula() string {
	return fmt.Sprintf("=sum(%s:%s)",
		domain.CellRef(FirstSlotColumn, domain.TopRowNumber),
		domain.CellRef(l.LastSlotColumn(), domain.TopRowNumber),
	)
}

// NewRow builds a fresh dated row with only slot populated.
func (l SlotLayout) NewRow(date time.Time, slot, value int) domain.Row {
	row := make(domain.Row, l.Width())
	row[DateColumn] = domain.FormatSheetDate(date)
	row[TotalColumn] = l.TotalFormula()
	row[slot] = strconv.Itoa(value)
	return row
}

type markerColumns struct {
	Actual    int
	Predicted int
}

const noColumn = -1

// Prediction table: date, total lookup, then actual/predicted pairs per marker.
var predictionColumns = map[domain.HourMarker]markerColumns{
	domain.HourMarkerMidday:     {Actual: 2, Predicted: 3},
	domain.HourMarkerAfternoon1: {Actual: 4, Predicted: 5},
	domain.HourMarkerAfternoon2: {Actual: 6, Predicted: 7},
	domain.HourMarkerEndOfDay:   {Actual: 8, Predicted: noColumn},
}

const predictionWidth = 9

func PredictionTotalFormula(alertTable string) string {
	return fmt.Sprintf("=VLOOKUP(%s, %s!A:B, 2, FALSE)",
		domain.CellRef(DateColumn, domain.TopRowNumber), alertTable)
}
