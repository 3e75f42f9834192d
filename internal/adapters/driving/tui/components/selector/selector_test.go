package selector

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

func TestNewSelector_Loading(t *testing.T) {
	s := NewSelector(nil)

	require.NotNil(t, s)
	assert.True(t, s.Loading())
	assert.True(t, s.Visible())
	assert.Contains(t, s.View(), "Loading categories...")
	assert.Empty(t, s.CategoryAt(0))
}

func TestSelector_RendersTabs(t *testing.T) {
	s := NewSelector(nil)
	s.SetCatalog(domain.FallbackCatalog())
	s.SetActive(domain.CategoryWBS)

	view := s.View()

	assert.False(t, s.Loading())
	assert.Contains(t, view, "Cost Centers")
	assert.Contains(t, view, "WBS Elements")
	assert.Equal(t, domain.CategoryWBS, s.Active())
}

func TestSelector_HiddenForSingleCategory(t *testing.T) {
	s := NewSelector(nil)
	s.SetCatalog(domain.Catalog{
		Categories: []domain.Category{{ID: "cc", Name: "Cost Centers"}},
		DefaultID:  "cc",
	})

	assert.False(t, s.Visible())
	assert.Empty(t, s.View())
}

func TestSelector_HiddenForEmptyCatalog(t *testing.T) {
	s := NewSelector(nil)
	s.SetCatalog(domain.Catalog{})

	assert.False(t, s.Visible())
	assert.Empty(t, s.View())
}

func TestSelector_CategoryAt(t *testing.T) {
	s := NewSelector(nil)
	s.SetCatalog(domain.Catalog{Categories: []domain.Category{
		{ID: "cc", Name: "Cost Centers"},
		{ID: "wbs", Name: "WBS Elements"},
	}})
	s.SetActive("cc")

	first := lipgloss.Width(s.renderTab(s.categories[0]))

	assert.Equal(t, "cc", s.CategoryAt(0))
	assert.Equal(t, "cc", s.CategoryAt(first-1))
	assert.Equal(t, "", s.CategoryAt(first))
	assert.Equal(t, "wbs", s.CategoryAt(first+1))
	assert.Equal(t, "", s.CategoryAt(500))
	assert.Equal(t, "", s.CategoryAt(-1))
}
