package domain

// Key is a navigation key recognised by the dropdown.
type Key int

// Navigation keys.
const (
	KeyNone Key = iota
	KeyDown
	KeyUp
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyDown:
		return "ArrowDown"
	case KeyUp:
		return "ArrowUp"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	default:
		return "None"
	}
}

// Event is an input event dispatched to subscribed handlers.
type Event interface {
	isEvent()
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Key Key
}

// PointerEvent is a pointer or touch press at terminal cell (X, Y).
type PointerEvent struct {
	X int
	Y int
}

func (KeyEvent) isEvent()     {}
func (PointerEvent) isEvent() {}

// Rect is a rectangular screen region. Width or Height of zero means empty.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
