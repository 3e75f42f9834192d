package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// defaultLookupConcurrency bounds SearchMany's parallel requests.
const defaultLookupConcurrency = 4

// LookupService resolves queries outside the interactive dropdown.
// It reads and fills the same cache as the dropdown.
type LookupService struct {
	source      driven.SearchSource
	cache       *ResultCache
	concurrency int
}

// NewLookupService creates a lookup service. A nil cache selects SharedCache.
func NewLookupService(source driven.SearchSource, cache *ResultCache) *LookupService {
	if cache == nil {
		cache = SharedCache()
	}
	return &LookupService{
		source:      source,
		cache:       cache,
		concurrency: defaultLookupConcurrency,
	}
}

// WithConcurrency sets the SearchMany parallelism.
func (s *LookupService) WithConcurrency(n int) *LookupService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Search resolves query within category, from cache when possible.
func (s *LookupService) Search(ctx context.Context, category, query string) ([]domain.ResultItem, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if items, ok := s.cache.Get(category, query); ok {
		logger.Debug("lookup: cache hit %s:%q", category, query)
		return items, nil
	}
	if s.source == nil {
		return nil, domain.ErrSourceUnavailable
	}

	items, err := s.source.Search(ctx, category, query)
	if err != nil {
		return nil, fmt.Errorf("lookup %s:%q: %w", category, query, err)
	}
	if items == nil {
		items = []domain.ResultItem{}
	}
	s.cache.Put(category, query, items)
	return items, nil
}

// SearchMany resolves several queries concurrently. The first failure
// cancels the remaining lookups.
func (s *LookupService) SearchMany(
	ctx context.Context, category string, queries []string,
) ([][]domain.ResultItem, error) {
	results := make([][]domain.ResultItem, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, q := range queries {
		g.Go(func() error {
			items, err := s.Search(gctx, category, q)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
