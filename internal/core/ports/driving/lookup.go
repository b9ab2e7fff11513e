package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// LookupService searches SharePoint for a batch of entities.
type LookupService interface {
	// Lookup searches for every entity and returns one result per entity,
	// in input order. Any failed search fails the whole batch with a
	// *domain.LookupError.
	Lookup(ctx context.Context, entities []domain.Entity, opts domain.ConnectionOptions) ([]domain.LookupResult, error)

	// ValidateOptions checks the required options. An empty slice means valid.
	ValidateOptions(opts domain.ConnectionOptions) []domain.ValidationError

	// Startup routes log output to sink.
	Startup(sink io.Writer)
}
