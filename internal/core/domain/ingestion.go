package domain

import "time"

// IngestionState describes where an ingestion batch is in its lifecycle.
// The retrieval service owns the authoritative state; clipseek mirrors
// the last observed value.
type IngestionState string

// Ingestion lifecycle states.
const (
	// IngestionPending means the batch was submitted but not yet observed.
	IngestionPending IngestionState = "pending"

	// IngestionRunning means the service is indexing the batch.
	IngestionRunning IngestionState = "running"

	// IngestionCompleted means every entry in the batch was indexed.
	IngestionCompleted IngestionState = "completed"

	// IngestionFailed means the batch failed, e.g. an unreachable URL
	// or unsupported format.
	IngestionFailed IngestionState = "failed"

	// IngestionPartial means some entries were indexed and some failed.
	IngestionPartial IngestionState = "partial"
)

// IsValid returns true if the state is recognised.
func (s IngestionState) IsValid() bool {
	switch s {
	case IngestionPending, IngestionRunning, IngestionCompleted, IngestionFailed, IngestionPartial:
		return true
	default:
		return false
	}
}

// Terminal returns true once the service will not change the state again.
func (s IngestionState) Terminal() bool {
	switch s {
	case IngestionCompleted, IngestionFailed, IngestionPartial:
		return true
	default:
		return false
	}
}

// Succeeded returns true if at least part of the batch was indexed.
func (s IngestionState) Succeeded() bool {
	return s == IngestionCompleted || s == IngestionPartial
}

// String returns the string representation.
func (s IngestionState) String() string {
	return string(s)
}

// IngestionRecord tracks one submitted ingestion batch.
type IngestionRecord struct {
	// BatchName is the name the batch was submitted under. It is the
	// unique identifier for the record.
	BatchName string

	// EntryIDs are the catalog entries included in the batch.
	EntryIDs []string

	// State is the last observed lifecycle state.
	State IngestionState

	// Error holds the service's failure message for failed batches.
	Error string

	// SubmittedAt is when the batch was submitted.
	SubmittedAt time.Time

	// UpdatedAt is when the state was last observed.
	UpdatedAt time.Time
}
