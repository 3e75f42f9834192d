// Package list provides the picker's result list.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lookup/internal/core/domain"
)

// DefaultMaxRows is how many results are visible at once.
const DefaultMaxRows = 8

// ResultList renders result items with the keyboard highlight and a mark on
// the currently selected value. It scrolls to keep the highlight visible.
// It holds no navigation logic of its own.
type ResultList struct {
	items         []domain.ResultItem
	highlighted   int
	selectedValue string
	offset        int
	styles        *styles.Styles
	width         int
	maxRows       int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		highlighted: -1,
		styles:      s,
		width:       60,
		maxRows:     DefaultMaxRows,
	}
}

// SetItems replaces the displayed items. The scroll position resets when
// the list changes.
func (r *ResultList) SetItems(items []domain.ResultItem) {
	if !sameItems(r.items, items) {
		r.offset = 0
	}
	r.items = items
	r.clampOffset()
}

// Items returns the displayed items.
func (r *ResultList) Items() []domain.ResultItem {
	return r.items
}

// SetHighlighted sets the highlighted index (-1 for none) and scrolls it
// into view.
func (r *ResultList) SetHighlighted(index int) {
	r.highlighted = index
	if index < 0 {
		return
	}
	if index < r.offset {
		r.offset = index
	}
	if index >= r.offset+r.maxRows {
		r.offset = index - r.maxRows + 1
	}
	r.clampOffset()
}

// Highlighted returns the highlighted index.
func (r *ResultList) Highlighted() int {
	return r.highlighted
}

// SetSelectedValue sets the value marked as selected.
func (r *ResultList) SetSelectedValue(value string) {
	r.selectedValue = value
}

// Offset returns the index of the first visible item.
func (r *ResultList) Offset() int {
	return r.offset
}

// VisibleCount returns the number of item rows rendered.
func (r *ResultList) VisibleCount() int {
	n := len(r.items) - r.offset
	if n > r.maxRows {
		n = r.maxRows
	}
	if n < 0 {
		return 0
	}
	return n
}

// Height returns the number of rows View produces.
func (r *ResultList) Height() int {
	h := r.VisibleCount()
	if r.hasMore() {
		h++
	}
	return h
}

// IndexAtRow maps a row of the rendered list to an item index,
// or -1 if the row holds no item.
func (r *ResultList) IndexAtRow(row int) int {
	if row < 0 || row >= r.VisibleCount() {
		return -1
	}
	return r.offset + row
}

// View renders the visible rows.
func (r *ResultList) View() string {
	n := r.VisibleCount()
	if n == 0 {
		return ""
	}

	lines := make([]string, 0, n+1)
	for i := r.offset; i < r.offset+n; i++ {
		lines = append(lines, r.renderItem(i, r.items[i]))
	}
	if r.hasMore() {
		more := len(r.items) - r.offset - n
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  … %d more", more)))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderItem(index int, item domain.ResultItem) string {
	marker := "  "
	if r.selectedValue != "" && item.Value == r.selectedValue {
		marker = r.styles.Marker.Render("✓ ")
	}

	text := item.Value
	if item.Label != "" && item.Label != item.Value {
		text = item.Label
	}
	text = truncate(text, r.width-4)

	if index == r.highlighted {
		return marker + r.styles.Highlighted.Render(padRight(text, r.width-4))
	}
	return marker + r.styles.Normal.Render(text)
}

// SetDimensions sets the width and the number of visible rows.
func (r *ResultList) SetDimensions(width, maxRows int) {
	r.width = width
	if maxRows < 1 {
		maxRows = 1
	}
	r.maxRows = maxRows
	r.clampOffset()
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// MaxRows returns the number of visible rows.
func (r *ResultList) MaxRows() int {
	return r.maxRows
}

// Count returns the number of items.
func (r *ResultList) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.items) == 0
}

func (r *ResultList) hasMore() bool {
	return len(r.items)-r.offset > r.maxRows
}

func (r *ResultList) clampOffset() {
	maxOffset := len(r.items) - r.maxRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.offset > maxOffset {
		r.offset = maxOffset
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func sameItems(a, b []domain.ResultItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
