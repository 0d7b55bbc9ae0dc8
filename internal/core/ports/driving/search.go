package driving

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search performs hybrid search across all indexed documents.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// StreamingSearchService is the optional streamed variant of SearchService
// (§4.10, §6 "search a collection (one-shot or streamed)"). events receives
// one domain.SearchEvent per plan/execute/judge transition and is closed by
// the implementation once the final result set is ready; the returned
// results are identical to what Search would have returned for the same
// call.
type StreamingSearchService interface {
	SearchStream(ctx context.Context, query string, opts domain.SearchOptions, events chan<- domain.SearchEvent) ([]domain.SearchResult, error)
}
