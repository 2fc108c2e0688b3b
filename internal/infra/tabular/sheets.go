package tabular

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

const valueInputUserEntered = "USER_ENTERED"

// SheetsStore maps each table to a worksheet of one spreadsheet. Row 1 is the
// header and the newest record sits on row 2.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewSheetsStore(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsStore, error) {
	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsStore{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}, nil
}

func (s *SheetsStore) ReadTopRow(ctx context.Context, table string) (domain.Row, error) {
	rangeRef := a1Range(table, fmt.Sprintf("%d:%d", domain.TopRowNumber, domain.TopRowNumber))

	ctx, span := tracing.StartExternalAPISpan(ctx, "sheets_values_get", rangeRef)
	defer span.End()

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to read %s: %w", rangeRef, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return nil, domain.ErrEmptyTable
	}

	row := make(domain.Row, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		row[i] = fmt.Sprint(v)
	}
	return row, nil
}

func (s *SheetsStore) UpdateCell(ctx context.Context, table, cellRef, value string) error {
	if _, _, err := domain.ParseCellRef(cellRef); err != nil {
		return err
	}

	rangeRef := a1Range(table, cellRef)

	ctx, span := tracing.StartExternalAPISpan(ctx, "sheets_values_update", rangeRef)
	defer span.End()

	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeRef, &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption(valueInputUserEntered).Context(ctx).Do()
	tracing.RecordResult(span, err)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rangeRef, err)
	}
	return nil
}

// InsertRowAtTop shifts existing rows down by one and writes row into the
// freed top row. Both requests go in one batch, so a failed write leaves no
// blank row behind.
func (s *SheetsStore) InsertRowAtTop(ctx context.Context, table string, row domain.Row) error {
	sheetID, err := s.sheetID(ctx, table)
	if err != nil {
		return err
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "sheets_insert_row", table)
	defer span.End()

	cells := make([]*sheets.CellData, len(row))
	for i, v := range row {
		cells[i] = cellData(v)
	}

	_, err = s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				InsertDimension: &sheets.InsertDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:         sheetID,
						Dimension:       "ROWS",
						StartIndex:      domain.TopRowNumber - 1,
						EndIndex:        domain.TopRowNumber,
						ForceSendFields: []string{"SheetId"},
					},
				},
			},
			{
				UpdateCells: &sheets.UpdateCellsRequest{
					Start: &sheets.GridCoordinate{
						SheetId:         sheetID,
						RowIndex:        domain.TopRowNumber - 1,
						ColumnIndex:     0,
						ForceSendFields: []string{"SheetId", "ColumnIndex"},
					},
					Rows:   []*sheets.RowData{{Values: cells}},
					Fields: "userEnteredValue",
				},
			},
		},
	}).Context(ctx).Do()
	tracing.RecordResult(span, err)
	if err != nil {
		return fmt.Errorf("failed to insert row into %s: %w", table, err)
	}
	return nil
}

// cellData types v the way the sheet would parse it if typed by hand.
func cellData(v string) *sheets.CellData {
	switch {
	case v == "":
		return &sheets.CellData{}
	case strings.HasPrefix(v, "="):
		return &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{FormulaValue: &v}}
	}

	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{NumberValue: &n}}
	}
	return &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{StringValue: &v}}
}

func (s *SheetsStore) Ping(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

func (s *SheetsStore) Close() error {
	return nil
}

func (s *SheetsStore) sheetID(ctx context.Context, table string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.sheetIDs[table]; ok {
		return id, nil
	}

	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to load worksheets: %w", err)
	}

	for _, sh := range spreadsheet.Sheets {
		if sh.Properties == nil {
			continue
		}
		s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
	}

	id, ok := s.sheetIDs[table]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	return id, nil
}

func a1Range(table, ref string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'!" + ref
}
