package driven

import (
	"context"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// SearchSource is the remote lookup endpoint.
// Implementations must honour context cancellation so that superseded
// fetches release their connection promptly.
type SearchSource interface {
	// Catalog fetches the available categories and the default category.
	Catalog(ctx context.Context) (domain.Catalog, error)

	// Search returns the items matching query within category, in source order.
	// A missing or malformed list is returned as an empty slice, not an error.
	Search(ctx context.Context, category, query string) ([]domain.ResultItem, error)
}
