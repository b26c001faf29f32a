package services

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages the video catalog.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Add creates a new catalog entry. When the entry has no ID, one is
// generated. Duplicate IDs are rejected.
func (s *CatalogService) Add(ctx context.Context, entry domain.CatalogEntry) (*domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Kind == "" {
		entry.Kind = domain.CatalogKindVideo
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, entry.ID)
	if err == nil && existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	if err := s.store.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save catalog entry: %w", err)
	}

	logger.Debug("Catalog entry added: %s -> %s", entry.ID, entry.URL)
	return &entry, nil
}

// Get retrieves an entry by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// List returns all catalog entries.
func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Remove deletes an entry from the catalog.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// ImportFile adds one entry per line of the given file. Lines hold a
// URL, optionally followed by whitespace and a title. Blank lines and
// lines starting with '#' are skipped. Already-catalogued URLs are
// skipped rather than duplicated.
func (s *CatalogService) ImportFile(ctx context.Context, path string) ([]domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	known, err := s.knownURLs(ctx)
	if err != nil {
		return nil, err
	}

	var added []domain.CatalogEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rawURL, title := splitImportLine(line)
		if known[rawURL] {
			logger.Debug("Import: line %d already catalogued, skipping", lineNo)
			continue
		}

		entry, err := s.Add(ctx, domain.CatalogEntry{URL: rawURL, Title: title})
		if err != nil {
			return added, fmt.Errorf("import line %d: %w", lineNo, err)
		}
		known[rawURL] = true
		added = append(added, *entry)
	}

	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("read catalog file: %w", err)
	}

	logger.Info("Imported %d entries from %s", len(added), path)
	return added, nil
}

// knownURLs returns the set of URLs already in the catalog.
func (s *CatalogService) knownURLs(ctx context.Context) (map[string]bool, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.URL] = true
	}
	return known, nil
}

// splitImportLine separates a URL from an optional title.
func splitImportLine(line string) (rawURL, title string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
