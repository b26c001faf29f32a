package driven

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// CatalogStore persists the video catalog.
type CatalogStore interface {
	// Save stores or updates a catalog entry.
	Save(ctx context.Context, entry domain.CatalogEntry) error

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.CatalogEntry, error)

	// Delete removes an entry.
	Delete(ctx context.Context, id string) error

	// List returns all catalog entries.
	List(ctx context.Context) ([]domain.CatalogEntry, error)
}
