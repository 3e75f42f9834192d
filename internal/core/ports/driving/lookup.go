package driving

import (
	"context"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// LookupService provides non-interactive lookups to external actors
// (CLI, MCP). It shares the process-wide result cache with the dropdown.
type LookupService interface {
	// Search resolves a single query, from cache when possible.
	Search(ctx context.Context, category, query string) ([]domain.ResultItem, error)

	// SearchMany resolves several queries concurrently.
	// Results are returned in the order of queries.
	SearchMany(ctx context.Context, category string, queries []string) ([][]domain.ResultItem, error)
}

// CategoryService loads the category catalog.
type CategoryService interface {
	// Load fetches the catalog. It never fails: on error the fallback
	// catalog is returned with Fallback set.
	Load(ctx context.Context) domain.Catalog
}
