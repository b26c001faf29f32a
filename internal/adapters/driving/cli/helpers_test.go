package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// mockSearchService returns two fixed results.
type mockSearchService struct {
	lastQuery domain.Query
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query domain.Query,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts

	best1, _ := domain.ParseMediaTime("00:02:05.0000000")
	best2, _ := domain.ParseMediaTime("00:00:10.0000000")
	return []domain.SearchResult{
		{VideoID: "v1", Best: best1, Start: best1, End: best1, Relevance: 0.92},
		{VideoID: "v2", Best: best2, Start: best2, End: best2, Relevance: 0.55},
	}, nil
}

// mockSearchServiceError always fails.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(
	_ context.Context,
	_ domain.Query,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return nil, errors.New("service outage")
}

// mockCatalogService is an in-memory catalog.
type mockCatalogService struct {
	entries map[string]domain.CatalogEntry
}

func newMockCatalogService() *mockCatalogService {
	return &mockCatalogService{entries: make(map[string]domain.CatalogEntry)}
}

func (m *mockCatalogService) Add(_ context.Context, entry domain.CatalogEntry) (*domain.CatalogEntry, error) {
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("entry-%d", len(m.entries)+1)
	}
	m.entries[entry.ID] = entry
	return &entry, nil
}

func (m *mockCatalogService) Get(_ context.Context, id string) (*domain.CatalogEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.CatalogEntry, error) {
	result := make([]domain.CatalogEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		result = append(result, entry)
	}
	return result, nil
}

func (m *mockCatalogService) Remove(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockCatalogService) ImportFile(_ context.Context, _ string) ([]domain.CatalogEntry, error) {
	entry := domain.CatalogEntry{ID: "imported-1", URL: "https://e/imported.mp4"}
	m.entries[entry.ID] = entry
	return []domain.CatalogEntry{entry}, nil
}

// mockIngestService records calls and returns a fixed batch.
type mockIngestService struct {
	record domain.IngestionRecord
	err    error
}

func newMockIngestService() *mockIngestService {
	return &mockIngestService{
		record: domain.IngestionRecord{
			BatchName:   "ingest-1700000000",
			EntryIDs:    []string{"v1"},
			State:       domain.IngestionCompleted,
			SubmittedAt: time.Now(),
		},
	}
}

func (m *mockIngestService) Ingest(_ context.Context, _ ...string) (*domain.IngestionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record := m.record
	return &record, nil
}

func (m *mockIngestService) Status(_ context.Context, _ string) (*domain.IngestionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record := m.record
	return &record, nil
}

func (m *mockIngestService) Wait(_ context.Context, _ string) (*domain.IngestionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record := m.record
	return &record, nil
}

func (m *mockIngestService) History(_ context.Context) ([]domain.IngestionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.IngestionRecord{m.record}, nil
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	setKeys  map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultAppSettings(),
		setKeys:  make(map[string]string),
	}
}

func (m *mockSettingsService) Get(_ context.Context) (domain.AppSettings, error) {
	return m.settings, nil
}

func (m *mockSettingsService) Update(_ context.Context, settings domain.AppSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsService) SetValue(_ context.Context, key, value string) error {
	if key == "bogus.key" {
		return domain.ErrInvalidInput
	}
	m.setKeys[key] = value
	return nil
}

// mockEntry builds a catalog entry for tests.
func mockEntry(id, url string) domain.CatalogEntry {
	return domain.CatalogEntry{ID: id, URL: url}
}

// setupTestServices swaps in mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	oldSearch := searchService
	oldCatalog := catalogService
	oldIngest := ingestService
	oldSettings := settingsService

	searchService = &mockSearchService{}
	catalogService = newMockCatalogService()
	ingestService = newMockIngestService()
	settingsService = newMockSettingsService()

	return func() {
		searchService = oldSearch
		catalogService = oldCatalog
		ingestService = oldIngest
		settingsService = oldSettings
	}
}
