package driving

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// IngestService submits catalog entries to the retrieval service for
// indexing and tracks batch outcomes.
type IngestService interface {
	// Ingest submits the given catalog entries (the whole catalog when
	// none are given) as one batch. Returns the batch record.
	Ingest(ctx context.Context, entryIDs ...string) (*domain.IngestionRecord, error)

	// Status refreshes and returns the record for a batch.
	Status(ctx context.Context, batchName string) (*domain.IngestionRecord, error)

	// Wait polls the service until the batch reaches a terminal state
	// or the context is cancelled.
	Wait(ctx context.Context, batchName string) (*domain.IngestionRecord, error)

	// History returns all recorded batches, newest first.
	History(ctx context.Context) ([]domain.IngestionRecord, error)
}
