// Package status provides the picker's status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lookup/internal/core/domain"
)

// Bar displays the dropdown phase, the committed selection and key hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	phase     domain.Phase
	selection domain.Selection
	count     int
	message   string
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		phase:  domain.PhaseClosed,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Warning.Render(s.message)
	}

	switch s.phase {
	case domain.PhaseSearching:
		return s.styles.Muted.Render("Searching...")
	case domain.PhaseError:
		return s.styles.Error.Render("Search failed")
	case domain.PhaseResults:
		if s.count == 1 {
			return s.styles.Normal.Render("1 result")
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.count))
	case domain.PhaseNoResults:
		return s.styles.Muted.Render("0 results")
	case domain.PhaseClosed, domain.PhaseTooShort:
	}

	if !s.selection.IsZero() {
		text := s.selection.Label
		if text == "" {
			text = s.selection.Value
		}
		return s.styles.Success.Render("Selected: " + text)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	return s.styles.Muted.Render(Hints(s.keymap.ShortHelp()))
}

// Hints formats bindings as "key desc · key desc".
func Hints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return strings.Join(hints, " · ")
}

// SetPhase sets the dropdown phase and the number of results shown.
func (s *Bar) SetPhase(phase domain.Phase, count int) {
	s.phase = phase
	s.count = count
}

// Phase returns the displayed phase.
func (s *Bar) Phase() domain.Phase {
	return s.phase
}

// SetSelection sets the committed selection.
func (s *Bar) SetSelection(selection domain.Selection) {
	s.selection = selection
}

// SetMessage sets a transient message that overrides the phase text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its default state.
func (s *Bar) Clear() {
	s.phase = domain.PhaseClosed
	s.selection = domain.Selection{}
	s.count = 0
	s.message = ""
}
