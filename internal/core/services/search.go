package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit is used when the caller does not specify one.
const defaultSearchLimit = 10

// SearchService dispatches queries to the external retrieval service.
type SearchService struct {
	retrieval driven.RetrievalService
	signer    driven.PlaybackSigner
	catalog   driven.CatalogStore
}

// NewSearchService creates a new search service.
// The signer and catalog parameters are optional (can be nil).
func NewSearchService(
	retrieval driven.RetrievalService,
	signer driven.PlaybackSigner,
	catalog driven.CatalogStore,
) *SearchService {
	return &SearchService{
		retrieval: retrieval,
		signer:    signer,
		catalog:   catalog,
	}
}

// Search validates the query locally, forwards the text unmodified to
// the retrieval service, and returns matches preserving service order.
func (s *SearchService) Search(
	ctx context.Context, query domain.Query, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: mode=%s text=%q", query.Mode, query.Text)

	// Local validation happens before any network call.
	if err := query.Validate(); err != nil {
		logger.Warn("Query rejected locally: %v", err)
		return nil, err
	}

	if s.retrieval == nil {
		return nil, domain.ErrRetrievalUnavailable
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	logger.Debug("Limit: %d, Offset: %d", limit, opts.Offset)

	// Request enough results to cover the offset.
	results, err := s.retrieval.Search(ctx, query, opts.Offset+limit)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Service returned %d results", len(results))

	results = applyPagination(results, opts.Offset, limit)

	if opts.SignPlayback && s.signer != nil {
		s.attachPlaybackURLs(ctx, results)
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// attachPlaybackURLs signs a playback URL for each result whose video
// URL is known from the catalog. Signing failures leave the URL empty.
func (s *SearchService) attachPlaybackURLs(ctx context.Context, results []domain.SearchResult) {
	for i := range results {
		videoURL := s.lookupVideoURL(ctx, results[i].VideoID)
		if videoURL == "" {
			continue
		}

		signed, err := s.signer.SignPlaybackURL(videoURL, results[i].Best)
		if err != nil {
			logger.Warn("Sign playback URL for %s: %v", results[i].VideoID, err)
			continue
		}
		results[i].PlaybackURL = signed
	}
}

// lookupVideoURL resolves a video ID to its catalog URL, if known.
func (s *SearchService) lookupVideoURL(ctx context.Context, videoID string) string {
	if s.catalog == nil || strings.TrimSpace(videoID) == "" {
		return ""
	}
	entry, err := s.catalog.Get(ctx, videoID)
	if err != nil || entry == nil {
		return ""
	}
	return entry.URL
}

// applyPagination applies offset and limit without reordering.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := offset + limit
	if end > len(results) {
		end = len(results)
	}

	return results[offset:end]
}
