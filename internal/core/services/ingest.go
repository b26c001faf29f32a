package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// defaultPollInterval is how often Wait checks the batch state.
const defaultPollInterval = 2 * time.Second

// IngestService submits catalog entries to the retrieval service and
// tracks batch outcomes locally.
type IngestService struct {
	catalog   driven.CatalogStore
	records   driven.IngestionStore
	retrieval driven.RetrievalService

	pollInterval time.Duration
	now          func() time.Time
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	catalog driven.CatalogStore,
	records driven.IngestionStore,
	retrieval driven.RetrievalService,
) *IngestService {
	return &IngestService{
		catalog:      catalog,
		records:      records,
		retrieval:    retrieval,
		pollInterval: defaultPollInterval,
		now:          time.Now,
	}
}

// SetPollInterval overrides the Wait poll interval. Useful for testing.
func (s *IngestService) SetPollInterval(d time.Duration) {
	if d > 0 {
		s.pollInterval = d
	}
}

// Ingest submits the given catalog entries as one named batch. When no
// IDs are given, the whole catalog is submitted. Submission failures
// are recorded as a failed batch, never reported as success.
func (s *IngestService) Ingest(ctx context.Context, entryIDs ...string) (*domain.IngestionRecord, error) {
	if s.retrieval == nil {
		return nil, domain.ErrRetrievalUnavailable
	}

	entries, err := s.resolveEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("nothing to ingest: %w", domain.ErrInvalidInput)
	}

	logger.Section("Ingestion")
	logger.Debug("Submitting %d entries", len(entries))

	if err := s.retrieval.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}

	now := s.now().UTC()
	record := domain.IngestionRecord{
		BatchName:   fmt.Sprintf("ingest-%d", now.Unix()),
		State:       domain.IngestionPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	items := make([]driven.IngestionItem, len(entries))
	for i, entry := range entries {
		items[i] = driven.IngestionItem{
			DocumentID:  entry.ID,
			DocumentURL: entry.URL,
		}
		record.EntryIDs = append(record.EntryIDs, entry.ID)
	}

	if err := s.retrieval.Ingest(ctx, record.BatchName, items); err != nil {
		record.State = domain.IngestionFailed
		record.Error = err.Error()
		s.saveRecord(ctx, record)
		return nil, fmt.Errorf("submit ingestion: %w", err)
	}

	record.State = domain.IngestionRunning
	s.saveRecord(ctx, record)

	logger.Info("Batch %s submitted", record.BatchName)
	return &record, nil
}

// Status refreshes the batch state from the service and returns the
// updated record.
func (s *IngestService) Status(ctx context.Context, batchName string) (*domain.IngestionRecord, error) {
	if s.records == nil {
		return nil, domain.ErrNotImplemented
	}

	record, err := s.records.Get(ctx, batchName)
	if err != nil {
		return nil, err
	}
	if record.State.Terminal() || s.retrieval == nil {
		return record, nil
	}

	state, message, err := s.retrieval.IngestionState(ctx, batchName)
	if err != nil {
		return nil, fmt.Errorf("ingestion state: %w", err)
	}

	if state != record.State || message != record.Error {
		record.State = state
		record.Error = message
		record.UpdatedAt = s.now().UTC()
		s.saveRecord(ctx, *record)
	}

	return record, nil
}

// Wait polls the service until the batch reaches a terminal state or
// the context is cancelled.
func (s *IngestService) Wait(ctx context.Context, batchName string) (*domain.IngestionRecord, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		record, err := s.Status(ctx, batchName)
		if err != nil {
			return nil, err
		}
		if record.State.Terminal() {
			logger.Info("Batch %s finished: %s", batchName, record.State)
			return record, nil
		}

		select {
		case <-ctx.Done():
			return record, ctx.Err()
		case <-ticker.C:
		}
	}
}

// History returns all recorded batches, newest first.
func (s *IngestService) History(ctx context.Context) ([]domain.IngestionRecord, error) {
	if s.records == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.records.List(ctx)
}

// resolveEntries loads the catalog entries to submit.
func (s *IngestService) resolveEntries(ctx context.Context, entryIDs []string) ([]domain.CatalogEntry, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotImplemented
	}

	if len(entryIDs) == 0 {
		entries, err := s.catalog.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list catalog: %w", err)
		}
		return entries, nil
	}

	entries := make([]domain.CatalogEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		entry, err := s.catalog.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", id, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// saveRecord persists a record, best effort.
func (s *IngestService) saveRecord(ctx context.Context, record domain.IngestionRecord) {
	if s.records == nil {
		return
	}
	if err := s.records.Save(ctx, record); err != nil {
		logger.Warn("Save ingestion record %s: %v", record.BatchName, err)
	}
}
