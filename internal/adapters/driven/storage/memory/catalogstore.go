package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	catalog domain.Catalog
	items   map[string][]domain.ResultItem
}

// NewCatalogStore creates a store holding seed.
func NewCatalogStore(seed driven.CatalogSeed) *CatalogStore {
	s := &CatalogStore{}
	s.replace(seed)
	return s
}

// Catalog returns a copy of the stored catalog.
func (s *CatalogStore) Catalog(_ context.Context) (domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.catalog
	out.Categories = append([]domain.Category{}, s.catalog.Categories...)
	return out, nil
}

// Search returns items of category containing query in value or label.
func (s *CatalogStore) Search(_ context.Context, category, query string, limit int) ([]domain.ResultItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.items[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}

	needle := strings.ToLower(query)
	result := []domain.ResultItem{}
	for _, item := range items {
		if limit > 0 && len(result) >= limit {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(item.Value), needle) ||
			strings.Contains(strings.ToLower(item.Label), needle) {
			result = append(result, item)
		}
	}
	return result, nil
}

// Replace swaps the store content.
func (s *CatalogStore) Replace(_ context.Context, seed driven.CatalogSeed) error {
	s.replace(seed)
	return nil
}

// Close is a no-op.
func (s *CatalogStore) Close() error { return nil }

func (s *CatalogStore) replace(seed driven.CatalogSeed) {
	items := make(map[string][]domain.ResultItem, len(seed.Catalog.Categories))
	for _, c := range seed.Catalog.Categories {
		items[c.ID] = append([]domain.ResultItem{}, seed.Items[c.ID]...)
	}

	catalog := seed.Catalog
	catalog.Categories = append([]domain.Category{}, seed.Catalog.Categories...)

	s.mu.Lock()
	s.catalog = catalog
	s.items = items
	s.mu.Unlock()
}
