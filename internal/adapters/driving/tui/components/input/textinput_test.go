package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
)

func TestNewField(t *testing.T) {
	si := NewField(styles.DefaultStyles())

	require.NotNil(t, si)
	assert.True(t, si.Focused())
	assert.Empty(t, si.Value())
	assert.Equal(t, "Type to search...", si.Placeholder())
}

func TestNewField_NilStyles(t *testing.T) {
	si := NewField(nil)

	require.NotNil(t, si)
	assert.NotNil(t, si.styles)
}

func TestField_Init(t *testing.T) {
	assert.NotNil(t, NewField(nil).Init())
}

func TestField_UpdateTyping(t *testing.T) {
	si := NewField(nil)

	si, _ = si.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fin")})

	assert.Equal(t, "fin", si.Value())
}

func TestField_SetValueAndReset(t *testing.T) {
	si := NewField(nil)

	si.SetValue("1000")
	assert.Equal(t, "1000", si.Value())

	si.Reset()
	assert.Empty(t, si.Value())
}

func TestField_ViewShowsClearMarker(t *testing.T) {
	si := NewField(nil)
	si.SetPlaceholder("Search cost centers...")

	assert.NotContains(t, si.View(), "✕")

	si.SetValue("fin")
	assert.Contains(t, si.View(), "✕")
	assert.Contains(t, si.View(), "fin")
}

func TestField_FocusBlur(t *testing.T) {
	si := NewField(nil)

	si.Blur()
	assert.False(t, si.Focused())

	si.Focus()
	assert.True(t, si.Focused())
}

func TestField_SetWidth(t *testing.T) {
	si := NewField(nil)

	si.SetWidth(100)
	assert.Equal(t, 100, si.Width())
	assert.Equal(t, 90, si.textinput.Width)

	si.SetWidth(10)
	assert.Equal(t, 20, si.textinput.Width)
}
