package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/metrics"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/prediction"
)

type WriteKind string

const (
	WriteKindUpdateCell WriteKind = "update_cell"
	WriteKindInsertRow  WriteKind = "insert_row"
)

// Write is one planned store mutation. Applied is false on dry runs.
type Write struct {
	Table   string     `json:"table"`
	Kind    WriteKind  `json:"kind"`
	CellRef string     `json:"cell_ref,omitempty"`
	Value   string     `json:"value,omitempty"`
	Row     domain.Row `json:"row,omitempty"`
	Applied bool       `json:"applied"`
}

type Manager struct {
	store           domain.TabularStore
	layout          SlotLayout
	predictionTable string
	alertTable      string
	loc             *time.Location
	metrics         *metrics.CollectorMetrics
}

func NewManager(
	store domain.TabularStore,
	layout SlotLayout,
	predictionTable string,
	alertTable string,
	loc *time.Location,
	collectorMetrics *metrics.CollectorMetrics,
) *Manager {
	if loc == nil {
		loc = time.UTC
	}
	return &Manager{
		store:           store,
		layout:          layout,
		predictionTable: predictionTable,
		alertTable:      alertTable,
		loc:             loc,
		metrics:         collectorMetrics,
	}
}

func (m *Manager) Layout() SlotLayout {
	return m.layout
}

// UpsertSlot stores value in the slot of now on today's row of table, adding
// the row first when the top row belongs to another date.
func (m *Manager) UpsertSlot(ctx context.Context, table string, now time.Time, value int, writeEnabled bool) ([]Write, error) {
	ctx, span := tracing.StartUpsertSpan(ctx, table)
	defer span.End()

	now = now.In(m.loc)
	value = max(0, value)

	slot, err := m.layout.SlotIndex(now.Hour(), now.Minute())
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	isToday, err := m.topRowIsToday(ctx, table, now)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	var write Write
	if isToday {
		write = Write{
			Table:   table,
			Kind:    WriteKindUpdateCell,
			CellRef: domain.CellRef(slot, domain.TopRowNumber),
			Value:   strconv.Itoa(value),
		}
	} else {
		write = Write{
			Table: table,
			Kind:  WriteKindInsertRow,
			Row:   m.layout.NewRow(now, slot, value),
		}
	}

	writes, err := m.apply(ctx, []Write{write}, writeEnabled)
	tracing.RecordResult(span, err)
	return writes, err
}

// UpsertPrediction records forecast under marker on today's prediction row.
// Markers with a predicted column are written only when a prediction exists;
// the end-of-day marker writes the actual alone once it clears the
// plausibility floor. Nothing is written otherwise.
func (m *Manager) UpsertPrediction(
	ctx context.Context,
	now time.Time,
	marker domain.HourMarker,
	forecast domain.Forecast,
	writeEnabled bool,
) ([]Write, error) {
	cols, ok := predictionColumns[marker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMarker, marker)
	}

	cells := predictionCells(cols, forecast)
	if len(cells) == 0 {
		slog.DebugContext(ctx, "no prediction cells to write",
			slog.String("marker", marker.String()),
			slog.Int("actual", forecast.Actual),
			slog.Bool("has_prediction", forecast.HasPrediction()),
		)
		return nil, nil
	}

	ctx, span := tracing.StartUpsertSpan(ctx, m.predictionTable)
	defer span.End()

	now = now.In(m.loc)

	isToday, err := m.topRowIsToday(ctx, m.predictionTable, now)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	var writes []Write
	if isToday {
		for _, c := range cells {
			writes = append(writes, Write{
				Table:   m.predictionTable,
				Kind:    WriteKindUpdateCell,
				CellRef: domain.CellRef(c.col, domain.TopRowNumber),
				Value:   c.value,
			})
		}
	} else {
		row := make(domain.Row, predictionWidth)
		row[DateColumn] = domain.FormatSheetDate(now)
		row[TotalColumn] = PredictionTotalFormula(m.alertTable)
		for _, c := range cells {
			row[c.col] = c.value
		}
		writes = append(writes, Write{
			Table: m.predictionTable,
			Kind:  WriteKindInsertRow,
			Row:   row,
		})
	}

	writes, err = m.apply(ctx, writes, writeEnabled)
	tracing.RecordResult(span, err)
	return writes, err
}

// TodayRecord returns the populated slots of today's row of table.
func (m *Manager) TodayRecord(ctx context.Context, table string, now time.Time) (domain.DailyRecord, error) {
	now = now.In(m.loc)

	row, err := m.store.ReadTopRow(ctx, table)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTable) {
			return domain.DailyRecord{}, ErrNoRecordToday
		}
		return domain.DailyRecord{}, err
	}

	date, ok := domain.ParseSheetDate(row.Date(), m.loc)
	if !ok || !domain.SameDate(now, date) {
		return domain.DailyRecord{}, ErrNoRecordToday
	}

	return domain.DailyRecordFromRow(row, date, FirstSlotColumn), nil
}

func (m *Manager) topRowIsToday(ctx context.Context, table string, now time.Time) (bool, error) {
	row, err := m.store.ReadTopRow(ctx, table)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTable) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read top row of %s: %w", table, err)
	}

	date, ok := domain.ParseSheetDate(row.Date(), m.loc)
	if !ok {
		slog.WarnContext(ctx, "top row date unreadable, starting a new row",
			slog.String("table", table),
			slog.String("value", row.Date()),
		)
		return false, nil
	}

	return domain.SameDate(now, date), nil
}

func (m *Manager) apply(ctx context.Context, writes []Write, writeEnabled bool) ([]Write, error) {
	for i := range writes {
		w := &writes[i]

		if !writeEnabled {
			slog.InfoContext(ctx, "skipping write",
				slog.String("table", w.Table),
				slog.String("kind", string(w.Kind)),
				slog.String("cell", w.CellRef),
				slog.String("value", w.Value),
				slog.Any("row", w.Row),
			)
			m.recordWrite(ctx, *w)
			continue
		}

		var err error
		switch w.Kind {
		case WriteKindUpdateCell:
			slog.InfoContext(ctx, "updating cell",
				slog.String("table", w.Table),
				slog.String("cell", w.CellRef),
				slog.String("value", w.Value),
			)
			err = m.store.UpdateCell(ctx, w.Table, w.CellRef, w.Value)
		case WriteKindInsertRow:
			slog.InfoContext(ctx, "inserting row",
				slog.String("table", w.Table),
				slog.String("date", w.Row.Date()),
			)
			err = m.store.InsertRowAtTop(ctx, w.Table, w.Row)
		}
		if err != nil {
			return writes[:i], fmt.Errorf("failed to %s on %s: %w", w.Kind, w.Table, err)
		}

		w.Applied = true
		m.recordWrite(ctx, *w)
	}

	return writes, nil
}

func (m *Manager) recordWrite(ctx context.Context, w Write) {
	if m.metrics != nil {
		m.metrics.RecordStoreWrite(ctx, w.Table, string(w.Kind), w.Applied)
	}
}

type cell struct {
	col   int
	value string
}

func predictionCells(cols markerColumns, forecast domain.Forecast) []cell {
	predicted, ok := forecast.PredictedValue()
	if ok && cols.Predicted != noColumn {
		return []cell{
			{col: cols.Actual, value: strconv.Itoa(forecast.Actual)},
			{col: cols.Predicted, value: strconv.Itoa(predicted)},
		}
	}

	if cols.Predicted == noColumn && forecast.Actual >= prediction.PlausibilityFloor {
		return []cell{
			{col: cols.Actual, value: strconv.Itoa(forecast.Actual)},
		}
	}

	return nil
}
