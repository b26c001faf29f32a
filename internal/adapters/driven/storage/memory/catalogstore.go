// Package memory provides in-memory implementations of the storage
// ports, used in tests and as a fallback when the durable backends
// cannot be opened.
package memory

import (
	"context"
	"sync"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CatalogEntry
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		entries: make(map[string]domain.CatalogEntry),
	}
}

// Save stores or updates a catalog entry.
func (s *CatalogStore) Save(_ context.Context, entry domain.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Get retrieves an entry by ID.
func (s *CatalogStore) Get(_ context.Context, id string) (*domain.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Delete removes an entry.
func (s *CatalogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// List returns all catalog entries.
func (s *CatalogStore) List(_ context.Context) ([]domain.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CatalogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, entry)
	}
	return result, nil
}
