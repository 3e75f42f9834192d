// Package input provides the picker's text field.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
)

// Height is the number of terminal rows the field occupies.
const Height = 3

// Field wraps a bubbles textinput with the picker's styling and a
// clear affordance.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewField creates a focused text field.
func NewField(s *styles.Styles) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &Field{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init initialises the text field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the text field with a clear marker when it holds text.
func (f *Field) View() string {
	content := f.textinput.View()
	if f.textinput.Value() != "" {
		content += f.styles.Muted.Render("  ✕")
	}
	return f.styles.InputField.Width(f.width - 2).Render(content)
}

// Value returns the current text.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
	f.textinput.CursorEnd()
}

// SetPlaceholder sets the text shown while the field is empty.
func (f *Field) SetPlaceholder(placeholder string) {
	f.textinput.Placeholder = placeholder
}

// Placeholder returns the placeholder text.
func (f *Field) Placeholder() string {
	return f.textinput.Placeholder
}

// Focus sets focus on the field.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the field is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the outer width of the field.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Border, padding, prompt and clear marker.
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the text.
func (f *Field) Reset() {
	f.textinput.Reset()
}
