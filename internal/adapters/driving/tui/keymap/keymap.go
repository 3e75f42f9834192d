// Package keymap defines keybindings for the picker.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// KeyMap defines all keybindings of the picker.
type KeyMap struct {
	// Quit exits without changing the selection.
	Quit key.Binding

	// Up and Down move the highlight, wrapping at the ends.
	Up   key.Binding
	Down key.Binding

	// Home and End jump to the first and last result.
	Home key.Binding
	End  key.Binding

	// Select commits the highlighted result.
	Select key.Binding

	// Close closes the result list.
	Close key.Binding

	// NextCategory and PrevCategory switch the active category.
	NextCategory key.Binding
	PrevCategory key.Binding

	// Clear resets the text field and the selection.
	Clear key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↑↓", "navigate"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab", "ctrl+t"),
			key.WithHelp("tab", "category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous category"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u", "ctrl+l"),
			key.WithHelp("ctrl+u", "clear"),
		),
	}
}

// ResultsHelp returns the bindings shown under a result list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Down, k.Select, k.Close}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCategory, k.Clear, k.Quit}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Select, k.Close, k.Clear},
		{k.NextCategory, k.PrevCategory, k.Quit},
	}
}

// NavigationKey maps a key press onto a dropdown navigation key.
// Keys without a navigation meaning map to domain.KeyNone.
func (k *KeyMap) NavigationKey(msg tea.KeyMsg) domain.Key {
	switch {
	case key.Matches(msg, k.Down):
		return domain.KeyDown
	case key.Matches(msg, k.Up):
		return domain.KeyUp
	case key.Matches(msg, k.Home):
		return domain.KeyHome
	case key.Matches(msg, k.End):
		return domain.KeyEnd
	case key.Matches(msg, k.Select):
		return domain.KeyEnter
	case key.Matches(msg, k.Close):
		return domain.KeyEscape
	default:
		return domain.KeyNone
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
