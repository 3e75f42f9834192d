package driving

import (
	"context"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// Dropdown is the search-select widget state machine.
// All methods must be called from a single event loop.
type Dropdown interface {
	// Input records a change of the typed text.
	Input(text string)

	// Debounced is called with a query the debouncer has emitted.
	// It returns a Fetch to run asynchronously, or nil if the query was
	// resolved synchronously (too short, or served from cache).
	Debounced(ctx context.Context, query string) domain.Fetch

	// Complete applies a fetch outcome. Returns false if it was superseded.
	Complete(done domain.Completion) bool

	// SetCatalog installs the loaded category catalog. If that changes the
	// active category, the typed text is searched again and the Fetch to
	// run is returned.
	SetCatalog(ctx context.Context, catalog domain.Catalog) domain.Fetch

	// SetCategory switches the active category, re-searching immediately
	// when the typed text is long enough.
	SetCategory(ctx context.Context, id string) domain.Fetch

	// SelectIndex selects the item at index (pointer click or Enter).
	SelectIndex(index int) bool

	// Clear resets input, selection and navigation.
	Clear()

	// Focus is called when the text field regains focus.
	Focus()

	// Close closes the result list without touching input or selection.
	Close()

	// SetBounds sets the screen region of the widget for outside-click detection.
	SetBounds(bounds domain.Rect)

	// Snapshot returns the current state.
	Snapshot() domain.Snapshot

	// Dispose tears the widget down.
	Dispose()
}

// DropdownHooks are the host callbacks of a dropdown.
type DropdownHooks struct {
	// OnValueChange is invoked when the selected value changes.
	OnValueChange func(value string)

	// OnDebounced receives debounced queries. It runs on the timer
	// goroutine; the host hands the query back to Debounced on its loop.
	OnDebounced func(query string)

	// OnFocusRequest asks the host to focus the text field.
	OnFocusRequest func()
}

// DropdownFactory creates a dropdown bound to the host's callbacks.
type DropdownFactory func(hooks DropdownHooks) Dropdown

// EventSink delivers keyboard and pointer events to subscribed widgets.
type EventSink interface {
	// Dispatch hands ev to the subscribers and reports whether one handled it.
	Dispatch(ev domain.Event) bool
}
