package driven

import (
	"context"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// SearchClient runs queries against a document repository.
// Implementations must be safe for concurrent use.
type SearchClient interface {
	// Search returns the primary result set for the query.
	// Transport and service errors are returned unchanged.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.RawResult, error)
}

// ClientFactory builds search clients from connection settings.
type ClientFactory interface {
	// NewClient returns a client bound to the given settings.
	NewClient(ctx context.Context, settings domain.ConnectionSettings) (SearchClient, error)
}
