package driving

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// SearchService dispatches queries to the retrieval service.
type SearchService interface {
	// Search validates the query locally, forwards it to the retrieval
	// service, and returns matches in the order received.
	Search(ctx context.Context, query domain.Query, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
