// Package selector provides the category selector shown above the text field.
package selector

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lookup/internal/core/domain"
)

const separator = " "

// Selector renders the categories as a row of tabs. It is hidden when the
// catalog offers a single category.
type Selector struct {
	styles     *styles.Styles
	categories []domain.Category
	active     string
	loading    bool
}

// NewSelector creates a selector in the loading state.
func NewSelector(s *styles.Styles) *Selector {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Selector{styles: s, loading: true}
}

// SetCatalog installs the categories and ends the loading state.
func (s *Selector) SetCatalog(catalog domain.Catalog) {
	s.categories = catalog.Categories
	s.loading = false
}

// SetActive marks the active category.
func (s *Selector) SetActive(id string) {
	s.active = id
}

// Active returns the active category ID.
func (s *Selector) Active() string {
	return s.active
}

// Loading returns true until a catalog is installed.
func (s *Selector) Loading() bool {
	return s.loading
}

// Visible reports whether View renders a row.
func (s *Selector) Visible() bool {
	return s.loading || len(s.categories) > 1
}

// View renders the tabs, the loading notice, or nothing.
func (s *Selector) View() string {
	if s.loading {
		return s.styles.Muted.Render("Loading categories...")
	}
	if len(s.categories) <= 1 {
		return ""
	}

	tabs := make([]string, len(s.categories))
	for i, cat := range s.categories {
		tabs[i] = s.renderTab(cat)
	}
	return strings.Join(tabs, separator)
}

// CategoryAt returns the category whose tab covers column x, or "".
func (s *Selector) CategoryAt(x int) string {
	if !s.Visible() || s.loading || x < 0 {
		return ""
	}
	col := 0
	for _, cat := range s.categories {
		w := lipgloss.Width(s.renderTab(cat))
		if x < col+w {
			return cat.ID
		}
		col += w + lipgloss.Width(separator)
		if x < col {
			return ""
		}
	}
	return ""
}

func (s *Selector) renderTab(cat domain.Category) string {
	text := cat.Name
	if text == "" {
		text = cat.ID
	}
	if cat.Icon != "" {
		text = cat.Icon + " " + text
	}
	if cat.ID == s.active {
		return s.styles.ActiveTab.Render(text)
	}
	return s.styles.Tab.Render(text)
}
