// Package styles holds the picker palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the picker palette. Colours are named after what they paint.
type Theme struct {
	Accent    lipgloss.Color // header and the highlighted row
	TabAccent lipgloss.Color // active category tab
	Text      lipgloss.Color
	Dim       lipgloss.Color // hints, placeholders, inactive tabs
	Selected  lipgloss.Color // check mark and committed value
	Caution   lipgloss.Color
	Failure   lipgloss.Color
	Frame     lipgloss.Color // input border
	Bar       lipgloss.Color // status bar background
}

// DefaultTheme returns the dark palette the picker ships with.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    "#7C3AED",
		TabAccent: "#06B6D4",
		Text:      "#CDD6F4",
		Dim:       "#6C7086",
		Selected:  "#A6E3A1",
		Caution:   "#F9E2AF",
		Failure:   "#F38BA8",
		Frame:     "#45475A",
		Bar:       "#181825",
	}
}

// Styles are the rendered roles of the picker.
type Styles struct {
	theme *Theme

	Title       lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Highlighted lipgloss.Style // row under the keyboard highlight
	Marker      lipgloss.Style // ✓ beside the selected value
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	InputField  lipgloss.Style
	StatusBar   lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles builds the styles for theme. A nil theme selects DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	tab := lipgloss.NewStyle().Padding(0, 1)

	return &Styles{
		theme:       theme,
		Title:       fg(theme.Accent).Bold(true),
		Normal:      fg(theme.Text),
		Muted:       fg(theme.Dim),
		Highlighted: fg(theme.Text).Background(theme.Accent).Bold(true),
		Marker:      fg(theme.Selected).Bold(true),
		Tab:         tab.Foreground(theme.Dim),
		ActiveTab:   tab.Foreground(theme.Text).Background(theme.TabAccent).Bold(true),
		Error:       fg(theme.Failure),
		Success:     fg(theme.Selected),
		Warning:     fg(theme.Caution),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Bar).Padding(0, 1),
		Help:      fg(theme.Dim),
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
