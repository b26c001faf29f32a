package driven

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// IngestionStore persists ingestion batch records.
type IngestionStore interface {
	// Save stores or updates an ingestion record.
	Save(ctx context.Context, record domain.IngestionRecord) error

	// Get retrieves a record by batch name.
	Get(ctx context.Context, batchName string) (*domain.IngestionRecord, error)

	// List returns all ingestion records, newest first.
	List(ctx context.Context) ([]domain.IngestionRecord, error)
}
