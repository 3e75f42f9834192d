package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Ensure Dropdown and EventDispatcher implement the interfaces.
var (
	_ driving.Dropdown  = (*Dropdown)(nil)
	_ driving.EventSink = (*EventDispatcher)(nil)
)

// DropdownConfig configures a Dropdown.
type DropdownConfig struct {
	// Category is the initial category. Empty adopts the catalog default
	// once SetCatalog is called.
	Category string

	// DebounceDelay is how long typing must pause before a search.
	DebounceDelay time.Duration

	// InitialValue seeds the input, the selected value and the selected label.
	InitialValue string

	// OnValueChange is invoked when the selected value changes.
	OnValueChange func(value string)

	// OnDebounced receives debounced queries on the timer goroutine.
	// The host must hand them back to Debounced on its event loop.
	OnDebounced func(query string)

	// OnFocusRequest asks the host to focus the text field.
	OnFocusRequest func()
}

// Dropdown composes the debouncer, fetch coordinator and navigator into the
// open/closed/search lifecycle of a search-select widget. It owns which
// value is selected versus merely typed.
//
// Dropdown is driven from a single event loop; see driving.Dropdown.
type Dropdown struct {
	cfg         DropdownConfig
	coordinator *FetchCoordinator
	debouncer   *Debouncer
	navigator   *Navigator

	input     string
	selection domain.Selection
	open      bool

	category         string
	categoryExplicit bool
	catalog          domain.Catalog

	// shown is the list the navigator currently indexes.
	shown []domain.ResultItem

	bounds      domain.Rect
	unsubscribe func()
	disposed    bool
}

// NewDropdown creates a dropdown and subscribes its keyboard and pointer
// handlers to dispatcher. A nil dispatcher leaves the widget unsubscribed.
func NewDropdown(cfg DropdownConfig, coordinator *FetchCoordinator, dispatcher *EventDispatcher) *Dropdown {
	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = domain.DefaultDebounceDelay
	}

	d := &Dropdown{
		cfg:         cfg,
		coordinator: coordinator,
		input:       cfg.InitialValue,
		selection:   domain.Selection{Value: cfg.InitialValue, Label: cfg.InitialValue},
		category:    cfg.Category,
		catalog:     domain.Catalog{},
	}
	if cfg.Category != "" {
		d.categoryExplicit = true
	} else {
		d.category = domain.CategoryCostCenter
	}

	d.debouncer = NewDebouncer(cfg.DebounceDelay, cfg.OnDebounced)
	d.navigator = NewNavigator(d.selectFromKeyboard, d.Close)

	if dispatcher != nil {
		d.unsubscribe = dispatcher.Subscribe(d.handleEvent)
	}
	return d
}

// NewDropdownFactory returns a driving.DropdownFactory that builds
// dropdowns from base with the host's hooks installed.
func NewDropdownFactory(
	base DropdownConfig,
	coordinator *FetchCoordinator,
	dispatcher *EventDispatcher,
) driving.DropdownFactory {
	return func(hooks driving.DropdownHooks) driving.Dropdown {
		cfg := base
		cfg.OnValueChange = hooks.OnValueChange
		cfg.OnDebounced = hooks.OnDebounced
		cfg.OnFocusRequest = hooks.OnFocusRequest
		return NewDropdown(cfg, coordinator, dispatcher)
	}
}

// Input records a change of the typed text.
func (d *Dropdown) Input(text string) {
	if d.disposed {
		return
	}

	d.input = text
	long := utf8.RuneCountInString(text) >= d.coordinator.MinLength()
	d.setOpen(long)

	if text != d.selection.Label && !d.selection.IsZero() {
		logger.Debug("dropdown: input %q invalidates selection %q", text, d.selection.Value)
		d.selection = domain.Selection{}
		d.notify("")
	}

	if long {
		d.debouncer.Push(text)
	} else {
		d.debouncer.Cancel()
		d.coordinator.Reset()
	}
	d.refresh()
}

// Debounced runs a search for a query emitted by the debouncer.
// Emissions that no longer match the input are ignored.
func (d *Dropdown) Debounced(ctx context.Context, query string) domain.Fetch {
	if d.disposed || query != d.input {
		return nil
	}
	fetch := d.coordinator.Search(ctx, d.category, query)
	d.refresh()
	return fetch
}

// Complete applies a fetch outcome. Returns false if it was superseded.
func (d *Dropdown) Complete(done domain.Completion) bool {
	if d.disposed {
		return false
	}
	applied := d.coordinator.Complete(done)
	// A cancelled live fetch is not applied but still ends the loading state.
	d.refresh()
	return applied
}

// SetCatalog installs the loaded category catalog. Without an explicit
// initial category the catalog default becomes active, and a query typed
// before the catalog arrived is searched again in that category.
func (d *Dropdown) SetCatalog(ctx context.Context, catalog domain.Catalog) domain.Fetch {
	if d.disposed {
		return nil
	}
	d.catalog = catalog
	if d.categoryExplicit {
		return nil
	}
	def := catalog.Default()
	if def == "" || def == d.category {
		return nil
	}
	d.category = def
	return d.research(ctx)
}

// SetCategory switches the active category. If the input already meets the
// minimum length the search is re-issued immediately, bypassing the debounce.
func (d *Dropdown) SetCategory(ctx context.Context, id string) domain.Fetch {
	if d.disposed || id == "" {
		return nil
	}
	d.category = id
	d.categoryExplicit = true
	return d.research(ctx)
}

// research re-issues the typed query in the active category, skipping the
// debounce. Input below the minimum length drops the old category's results.
func (d *Dropdown) research(ctx context.Context) domain.Fetch {
	d.debouncer.Cancel()
	if !d.longEnough() {
		d.coordinator.Reset()
		d.refresh()
		return nil
	}
	fetch := d.coordinator.Search(ctx, d.category, d.input)
	d.refresh()
	return fetch
}

func (d *Dropdown) longEnough() bool {
	return utf8.RuneCountInString(d.input) >= d.coordinator.MinLength()
}

// SelectIndex selects the item at index of the current result list.
func (d *Dropdown) SelectIndex(index int) bool {
	if d.disposed {
		return false
	}
	items := d.coordinator.State().Items
	if index < 0 || index >= len(items) {
		return false
	}
	d.selectItem(items[index])
	return true
}

func (d *Dropdown) selectFromKeyboard(index int) {
	d.SelectIndex(index)
}

func (d *Dropdown) selectItem(item domain.ResultItem) {
	logger.Debug("dropdown: selected %q (%s)", item.Value, item.Label)
	d.selection = domain.Selection{Value: item.Value, Label: item.Label}
	d.input = ""
	d.debouncer.Cancel()
	d.setOpen(false)
	d.notify(item.Value)
}

// Clear resets input, selection and navigation, closes the list and asks
// the host to focus the text field.
func (d *Dropdown) Clear() {
	if d.disposed {
		return
	}
	d.input = ""
	d.selection = domain.Selection{}
	d.debouncer.Cancel()
	d.coordinator.Reset()
	d.navigator.Reset()
	d.setOpen(false)
	d.refresh()
	d.notify("")

	if d.cfg.OnFocusRequest != nil {
		d.cfg.OnFocusRequest()
	}
}

// Focus reopens the list if the input is long enough and items exist.
func (d *Dropdown) Focus() {
	if d.disposed {
		return
	}
	if d.longEnough() && len(d.coordinator.State().Items) > 0 {
		d.setOpen(true)
		d.refresh()
	}
}

// Close closes the list without touching input or selection.
func (d *Dropdown) Close() {
	if d.disposed {
		return
	}
	d.setOpen(false)
}

// SetBounds sets the widget's screen region for outside-click detection.
func (d *Dropdown) SetBounds(bounds domain.Rect) {
	d.bounds = bounds
}

// HandleKey processes a navigation key directly. Hosts that use an
// EventDispatcher do not need to call it.
func (d *Dropdown) HandleKey(key domain.Key) bool {
	if d.disposed {
		return false
	}
	return d.navigator.HandleKey(key)
}

func (d *Dropdown) handleEvent(ev domain.Event) bool {
	if d.disposed {
		return false
	}
	switch ev := ev.(type) {
	case domain.KeyEvent:
		return d.navigator.HandleKey(ev.Key)
	case domain.PointerEvent:
		if d.open && !d.bounds.Empty() && !d.bounds.Contains(ev.X, ev.Y) {
			logger.Debug("dropdown: pointer outside at (%d,%d), closing", ev.X, ev.Y)
			d.setOpen(false)
		}
	}
	return false
}

// Phase returns the display state.
func (d *Dropdown) Phase() domain.Phase {
	if d.input != "" && !d.longEnough() {
		return domain.PhaseTooShort
	}
	if !d.open {
		return domain.PhaseClosed
	}

	st := d.coordinator.State()
	switch {
	case st.Loading || d.debouncer.Pending() || st.Query != d.input:
		return domain.PhaseSearching
	case st.Err != "":
		return domain.PhaseError
	case len(st.Items) == 0:
		return domain.PhaseNoResults
	default:
		return domain.PhaseResults
	}
}

// Snapshot returns the current state.
func (d *Dropdown) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Input:       d.input,
		Selection:   d.selection,
		Search:      d.coordinator.State(),
		Open:        d.open,
		Highlighted: d.navigator.Highlighted(),
		Phase:       d.Phase(),
		Category:    d.category,
		Catalog:     d.catalog,
		MinLength:   d.coordinator.MinLength(),
	}
}

// Dispose stops the debouncer, cancels the live fetch and unsubscribes
// the event handlers. The dropdown ignores every later call.
func (d *Dropdown) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.debouncer.Stop()
	d.coordinator.Cancel()
	d.navigator.SetOpen(false)
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// Disposed returns true after Dispose.
func (d *Dropdown) Disposed() bool {
	return d.disposed
}

func (d *Dropdown) setOpen(open bool) {
	d.open = open
	d.navigator.SetOpen(open)
}

// refresh points the navigator at the displayed list, resetting the
// highlight whenever that list is replaced.
func (d *Dropdown) refresh() {
	var displayed []domain.ResultItem
	if d.Phase() == domain.PhaseResults {
		displayed = d.coordinator.State().Items
	}
	if sameList(displayed, d.shown) {
		return
	}
	d.shown = displayed
	d.navigator.SetCount(len(displayed))
}

func (d *Dropdown) notify(value string) {
	if d.cfg.OnValueChange != nil {
		d.cfg.OnValueChange(value)
	}
}

func sameList(a, b []domain.ResultItem) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
