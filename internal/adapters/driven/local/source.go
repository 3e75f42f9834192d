// Package local provides a SearchSource backed by a CatalogStore in the same
// process. It serves the picker without a running backend (--offline).
package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.SearchSource = (*Source)(nil)

// DefaultLimit matches the result cap of the demo backend.
const DefaultLimit = 50

// Source answers lookups from a CatalogStore.
type Source struct {
	store driven.CatalogStore
	limit int
}

// NewSource creates a source over store. A limit of zero selects DefaultLimit.
func NewSource(store driven.CatalogStore, limit int) *Source {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Source{store: store, limit: limit}
}

// Catalog returns the stored catalog.
func (s *Source) Catalog(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}
	catalog, err := s.store.Catalog(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
	}
	return catalog, nil
}

// Search returns matching items. Unknown categories and store failures are
// reported as search failures, like a non-2xx response from the backend.
func (s *Source) Search(ctx context.Context, category, query string) ([]domain.ResultItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := s.store.Search(ctx, category, query, s.limit)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}
	if items == nil {
		items = []domain.ResultItem{}
	}
	return items, nil
}
