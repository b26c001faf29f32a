package driven

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// IngestionItem is one video submitted for indexing.
type IngestionItem struct {
	// DocumentID identifies the video within the index.
	DocumentID string

	// DocumentURL is the video location the service will fetch.
	DocumentURL string
}

// IndexedDocument is a video the service reports as present in the index.
type IndexedDocument struct {
	// DocumentID identifies the video within the index.
	DocumentID string

	// DocumentURL is the stored video location.
	DocumentURL string

	// DocumentKind is the service's document classification.
	DocumentKind string
}

// RetrievalService is the external video retrieval API. It owns all
// index state; clipseek only submits work and forwards queries.
type RetrievalService interface {
	// EnsureIndex creates the retrieval index if it does not exist.
	EnsureIndex(ctx context.Context) error

	// Ingest submits a named batch of videos for indexing. The service
	// processes the batch asynchronously; poll IngestionState for the
	// outcome.
	Ingest(ctx context.Context, batchName string, items []IngestionItem) error

	// IngestionState reports the current state of a submitted batch.
	IngestionState(ctx context.Context, batchName string) (domain.IngestionState, string, error)

	// ListDocuments returns the videos present in the index.
	ListDocuments(ctx context.Context) ([]IndexedDocument, error)

	// Search forwards a validated query and returns matches in the
	// service's relevance order.
	Search(ctx context.Context, query domain.Query, limit int) ([]domain.SearchResult, error)
}
