package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Ensure CategoryService implements the interface.
var _ driving.CategoryService = (*CategoryService)(nil)

// CategoryService loads the category catalog from the search source,
// substituting the fallback catalog when the source is unavailable.
type CategoryService struct {
	source driven.SearchSource

	// lastErr records the most recent load failure. It is not surfaced to
	// the user but is available for diagnostics.
	lastErr error
}

// NewCategoryService creates a category service.
func NewCategoryService(source driven.SearchSource) *CategoryService {
	return &CategoryService{source: source}
}

// Load fetches the catalog, falling back to domain.FallbackCatalog on error.
func (s *CategoryService) Load(ctx context.Context) domain.Catalog {
	logger.Section("Category Catalog")

	if s.source == nil {
		s.lastErr = fmt.Errorf("%w: %w", domain.ErrConfigLoad, domain.ErrSourceUnavailable)
		logger.Warn("No search source, using fallback categories")
		return domain.FallbackCatalog()
	}

	catalog, err := s.source.Catalog(ctx)
	if err != nil {
		s.lastErr = fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
		logger.Warn("Loading categories failed, using fallback: %v", err)
		return domain.FallbackCatalog()
	}

	if catalog.Categories == nil {
		catalog.Categories = []domain.Category{}
	}
	if catalog.DefaultID == "" {
		catalog.DefaultID = domain.CategoryCostCenter
	}

	s.lastErr = nil
	logger.Debug("Loaded %d categories, default %q", len(catalog.Categories), catalog.DefaultID)
	return catalog
}

// LastError returns the error of the most recent failed load, or nil.
func (s *CategoryService) LastError() error {
	return s.lastErr
}
