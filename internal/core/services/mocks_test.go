package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// MockSearchSource implements driven.SearchSource for testing.
type MockSearchSource struct {
	CatalogFunc func(ctx context.Context) (domain.Catalog, error)
	SearchFunc  func(ctx context.Context, category, query string) ([]domain.ResultItem, error)

	mu    sync.Mutex
	calls []string
}

var _ driven.SearchSource = (*MockSearchSource)(nil)

func (m *MockSearchSource) Catalog(ctx context.Context) (domain.Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}
	return domain.Catalog{}, nil
}

func (m *MockSearchSource) Search(ctx context.Context, category, query string) ([]domain.ResultItem, error) {
	m.mu.Lock()
	m.calls = append(m.calls, category+":"+query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, category, query)
	}
	return []domain.ResultItem{}, nil
}

// Calls returns the recorded "category:query" searches.
func (m *MockSearchSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// staticSource answers every query from a fixed table.
func staticSource(table map[string][]domain.ResultItem) *MockSearchSource {
	return &MockSearchSource{
		SearchFunc: func(_ context.Context, category, query string) ([]domain.ResultItem, error) {
			return table[category+":"+query], nil
		},
	}
}

func alpha() []domain.ResultItem {
	return []domain.ResultItem{{Value: "1", Label: "Alpha"}}
}

func fiveItems() []domain.ResultItem {
	return []domain.ResultItem{
		{Value: "1000", Label: "1000 - IT Department"},
		{Value: "2000", Label: "2000 - Finance Department"},
		{Value: "3000", Label: "3000 - Marketing Department"},
		{Value: "4000", Label: "4000 - Operations"},
		{Value: "5000", Label: "5000 - Human Resources"},
	}
}
