package tabular

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// runStoreSuite checks the behaviour every backend must share.
func runStoreSuite(t *testing.T, store domain.TabularStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		if _, err := store.ReadTopRow(ctx, "empty"); !errors.Is(err, domain.ErrEmptyTable) {
			t.Errorf("expected ErrEmptyTable, got %v", err)
		}
	})

	t.Run("insert keeps history below", func(t *testing.T) {
		older := domain.Row{"10/3/19", "=sum(C2:BF2)", "5"}
		newer := domain.Row{"10/4/19", "=sum(C2:BF2)", "", "7"}

		if err := store.InsertRowAtTop(ctx, "EntryA", older); err != nil {
			t.Fatalf("InsertRowAtTop error: %v", err)
		}
		if err := store.InsertRowAtTop(ctx, "EntryA", newer); err != nil {
			t.Fatalf("InsertRowAtTop error: %v", err)
		}

		top, err := store.ReadTopRow(ctx, "EntryA")
		if err != nil {
			t.Fatalf("ReadTopRow error: %v", err)
		}
		if top.Date() != "10/4/19" || top.Cell(3) != "7" {
			t.Errorf("top row = %v, want newest row", top)
		}

		if err := store.UpdateCell(ctx, "EntryA", "C3", "9"); err != nil {
			t.Fatalf("UpdateCell on history row error: %v", err)
		}
	})

	t.Run("update top cell is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := store.UpdateCell(ctx, "EntryA", "E2", "12"); err != nil {
				t.Fatalf("UpdateCell error: %v", err)
			}
		}

		top, err := store.ReadTopRow(ctx, "EntryA")
		if err != nil {
			t.Fatalf("ReadTopRow error: %v", err)
		}
		if top.Cell(4) != "12" {
			t.Errorf("E2 = %q, want 12", top.Cell(4))
		}
		if top.Cell(3) != "7" {
			t.Errorf("D2 = %q, neighbouring cell must be untouched", top.Cell(3))
		}
	})

	t.Run("tables are independent", func(t *testing.T) {
		if _, err := store.ReadTopRow(ctx, "EntryB"); !errors.Is(err, domain.ErrEmptyTable) {
			t.Errorf("expected ErrEmptyTable for untouched table, got %v", err)
		}
	})

	t.Run("update missing row", func(t *testing.T) {
		if err := store.UpdateCell(ctx, "EntryA", "C40", "1"); !errors.Is(err, ErrRowNotFound) {
			t.Errorf("expected ErrRowNotFound, got %v", err)
		}
	})

	t.Run("invalid cell ref", func(t *testing.T) {
		if err := store.UpdateCell(ctx, "EntryA", "2C", "1"); !errors.Is(err, domain.ErrInvalidCellRef) {
			t.Errorf("expected ErrInvalidCellRef, got %v", err)
		}
		if err := store.UpdateCell(ctx, "EntryA", "C1", "1"); !errors.Is(err, domain.ErrInvalidCellRef) {
			t.Errorf("header row: expected ErrInvalidCellRef, got %v", err)
		}
	})
}
