package driven

import (
	"context"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// CatalogSeed is the full content of a catalog store.
type CatalogSeed struct {
	Catalog domain.Catalog
	Items   map[string][]domain.ResultItem
}

// CatalogStore persists the categories and items served by the demo backend.
type CatalogStore interface {
	// Catalog returns the stored categories and default category.
	Catalog(ctx context.Context) (domain.Catalog, error)

	// Search returns items in category whose value or label contains query,
	// case-insensitively. An empty query matches everything.
	// Returns domain.ErrUnknownCategory if the category does not exist.
	Search(ctx context.Context, category, query string, limit int) ([]domain.ResultItem, error)

	// Replace atomically swaps the store content for seed.
	Replace(ctx context.Context, seed CatalogSeed) error

	// Close releases resources.
	Close() error
}
