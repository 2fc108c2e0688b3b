package tabular

import (
	"context"
	"fmt"
	"sync"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// MemoryStore keeps tables in process. Rows are ordered newest first.
type MemoryStore struct {
	mu        sync.Mutex
	tables    map[string][]domain.Row
	mutations int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]domain.Row),
	}
}

// Seed appends rows below any existing rows of table.
func (s *MemoryStore) Seed(table string, rows ...domain.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		s.tables[table] = append(s.tables[table], cloneRow(r))
	}
}

func (s *MemoryStore) Rows(table string) []domain.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]domain.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		rows = append(rows, cloneRow(r))
	}
	return rows
}

// Mutations counts successful UpdateCell and InsertRowAtTop calls.
func (s *MemoryStore) Mutations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutations
}

func (s *MemoryStore) ReadTopRow(_ context.Context, table string) (domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	if len(rows) == 0 {
		return nil, domain.ErrEmptyTable
	}
	return cloneRow(rows[0]), nil
}

func (s *MemoryStore) UpdateCell(_ context.Context, table, cellRef, value string) error {
	col, rowNumber, err := domain.ParseCellRef(cellRef)
	if err != nil {
		return err
	}
	offset, err := rowOffset(rowNumber)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	if offset >= len(rows) {
		return fmt.Errorf("%w: %s!%s", ErrRowNotFound, table, cellRef)
	}
	rows[offset] = setCell(rows[offset], col, value)
	s.mutations++
	return nil
}

func (s *MemoryStore) InsertRowAtTop(_ context.Context, table string, row domain.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = append([]domain.Row{cloneRow(row)}, s.tables[table]...)
	s.mutations++
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
