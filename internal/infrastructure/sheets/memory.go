package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
)

// MemoryStore is an in-memory repository.RowStore. It backs tests and
// local development without Google credentials.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]repository.Row // "<spreadsheet>/<worksheet>" -> data rows
}

// NewMemoryStore creates an empty in-memory row store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]repository.Row)}
}

func key(spreadsheetID, worksheet string) string {
	return spreadsheetID + "/" + worksheet
}

func (s *MemoryStore) ReadAll(_ context.Context, spreadsheetID, worksheet string) ([]repository.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.data[key(spreadsheetID, worksheet)]
	out := make([]repository.Row, len(rows))
	for i, row := range rows {
		out[i] = append(repository.Row(nil), row...)
	}
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, spreadsheetID, worksheet string, rows []repository.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(spreadsheetID, worksheet)
	for _, row := range rows {
		s.data[k] = append(s.data[k], append(repository.Row(nil), row...))
	}
	return nil
}

func (s *MemoryStore) DeleteRows(_ context.Context, spreadsheetID, worksheet string, positions []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(spreadsheetID, worksheet)
	rows := s.data[k]
	for _, pos := range positions {
		if pos < 0 || pos >= len(rows) {
			return fmt.Errorf("memory store: row position %d out of range (%d rows)", pos, len(rows))
		}
		rows = append(rows[:pos], rows[pos+1:]...)
	}
	s.data[k] = rows
	return nil
}
