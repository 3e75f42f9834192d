package mcp

import (
	"context"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	items    map[string][]domain.ResultItem
	err      error
	category string
	queries  []string
}

func (m *mockLookupService) Search(ctx context.Context, category, query string) ([]domain.ResultItem, error) {
	lists, err := m.SearchMany(ctx, category, []string{query})
	if err != nil {
		return nil, err
	}
	return lists[0], nil
}

func (m *mockLookupService) SearchMany(
	_ context.Context,
	category string,
	queries []string,
) ([][]domain.ResultItem, error) {
	m.category = category
	m.queries = queries
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]domain.ResultItem, len(queries))
	for i, q := range queries {
		out[i] = m.items[q]
	}
	return out, nil
}

// mockCategoryService is a mock implementation of driving.CategoryService.
type mockCategoryService struct {
	catalog domain.Catalog
}

func (m *mockCategoryService) Load(_ context.Context) domain.Catalog {
	return m.catalog
}

func validPorts() *Ports {
	return &Ports{
		Lookup:     &mockLookupService{},
		Categories: &mockCategoryService{catalog: domain.FallbackCatalog()},
	}
}
