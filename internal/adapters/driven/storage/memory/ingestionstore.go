package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
)

// Ensure IngestionStore implements the interface.
var _ driven.IngestionStore = (*IngestionStore)(nil)

// IngestionStore is an in-memory implementation of driven.IngestionStore.
type IngestionStore struct {
	mu      sync.RWMutex
	records map[string]domain.IngestionRecord
}

// NewIngestionStore creates a new in-memory ingestion store.
func NewIngestionStore() *IngestionStore {
	return &IngestionStore{
		records: make(map[string]domain.IngestionRecord),
	}
}

// Save stores or updates an ingestion record.
func (s *IngestionStore) Save(_ context.Context, record domain.IngestionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.BatchName] = record
	return nil
}

// Get retrieves a record by batch name.
func (s *IngestionStore) Get(_ context.Context, batchName string) (*domain.IngestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[batchName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all ingestion records, newest first.
func (s *IngestionStore) List(_ context.Context) ([]domain.IngestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.IngestionRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}
