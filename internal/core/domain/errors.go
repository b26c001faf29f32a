package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidQueryMode indicates a query mode that is neither visual nor speech.
	// Queries with an invalid mode are rejected before any network call.
	ErrInvalidQueryMode = errors.New("invalid query mode")

	// ErrEmptyQuery indicates a query with no text content.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNotConfigured indicates the retrieval service connection is not set up.
	// The user must run the settings commands before searching or ingesting.
	ErrNotConfigured = errors.New("retrieval service not configured")

	// ErrRetrievalUnavailable indicates the retrieval service adapter is missing.
	ErrRetrievalUnavailable = errors.New("retrieval service unavailable")

	// ErrIngestionInProgress indicates an ingestion batch is already running.
	ErrIngestionInProgress = errors.New("ingestion in progress")

	// ErrSignerUnavailable indicates no playback signer is configured.
	// Search still works; results simply carry no playback URL.
	ErrSignerUnavailable = errors.New("playback signer unavailable")
)
