package driving

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// CatalogService manages the video catalog.
type CatalogService interface {
	// Add creates a new catalog entry. An ID is generated when absent.
	Add(ctx context.Context, entry domain.CatalogEntry) (*domain.CatalogEntry, error)

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.CatalogEntry, error)

	// List returns all catalog entries.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// Remove deletes an entry from the catalog.
	Remove(ctx context.Context, id string) error

	// ImportFile adds one entry per URL line in a catalog file.
	// Returns the entries added.
	ImportFile(ctx context.Context, path string) ([]domain.CatalogEntry, error)
}
