package services

import "github.com/custodia-labs/lookup/internal/core/domain"

// Navigator tracks a highlighted index over an indexed list in response to
// navigation keys. It knows only the item count, never item content.
type Navigator struct {
	highlighted int
	open        bool
	count       int

	onSelect func(index int)
	onClose  func()
}

// NewNavigator creates a navigator. Either callback may be nil.
func NewNavigator(onSelect func(index int), onClose func()) *Navigator {
	return &Navigator{
		highlighted: -1,
		onSelect:    onSelect,
		onClose:     onClose,
	}
}

// SetOpen updates the open flag. Closing resets the highlight.
func (n *Navigator) SetOpen(open bool) {
	n.open = open
	if !open {
		n.highlighted = -1
	}
}

// SetCount installs the size of a replaced list and resets the highlight.
func (n *Navigator) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	n.count = count
	n.highlighted = -1
}

// Reset clears the highlight.
func (n *Navigator) Reset() {
	n.highlighted = -1
}

// Highlighted returns the highlighted index, or -1.
func (n *Navigator) Highlighted() int {
	return n.highlighted
}

// HandleKey processes a navigation key. It returns true if the key was
// handled, in which case the host must suppress its default behaviour.
// Keys are ignored while closed or when the list is empty.
func (n *Navigator) HandleKey(key domain.Key) bool {
	if !n.open || n.count == 0 {
		return false
	}

	switch key {
	case domain.KeyDown:
		next := n.highlighted + 1
		if next >= n.count {
			next = 0
		}
		n.highlighted = next
	case domain.KeyUp:
		next := n.highlighted - 1
		if next < 0 {
			next = n.count - 1
		}
		n.highlighted = next
	case domain.KeyHome:
		n.highlighted = 0
	case domain.KeyEnd:
		n.highlighted = n.count - 1
	case domain.KeyEnter:
		if n.highlighted >= 0 && n.highlighted < n.count && n.onSelect != nil {
			n.onSelect(n.highlighted)
		}
	case domain.KeyEscape:
		if n.onClose != nil {
			n.onClose()
		}
	default:
		return false
	}
	return true
}
