package domain

import "context"

//go:generate mockgen -source=tabular_store.go -destination=tabular_store_mock.go -package=domain

// TabularStore is a set of named tables whose rows are ordered newest first.
// Cell references use A1 notation with the newest row at TopRowNumber.
type TabularStore interface {
	// ReadTopRow returns ErrEmptyTable when the table holds no data rows.
	ReadTopRow(ctx context.Context, table string) (Row, error)
	UpdateCell(ctx context.Context, table, cellRef, value string) error
	InsertRowAtTop(ctx context.Context, table string, row Row) error
}
