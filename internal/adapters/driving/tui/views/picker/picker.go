// Package picker provides the search-select view: a category selector, a
// text field and the dropdown's result panel.
package picker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/components/selector"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
	"github.com/custodia-labs/lookup/internal/logger"
)

// View hosts a dropdown inside the Bubbletea event loop. Debounced queries
// and fetch outcomes re-enter Update as messages; keyboard and pointer
// input reaches the dropdown through the event sink.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	selector  *selector.Selector
	list      *list.ResultList
	statusbar *status.Bar

	categories driving.CategoryService
	dropdown   driving.Dropdown
	events     driving.EventSink
	ctx        context.Context

	debounced chan string
	done      chan struct{}
	closeOnce sync.Once

	// changes collects value notifications raised during one Update.
	changes []messages.ValueChanged

	width  int
	height int
	ready  bool
}

// layout holds the screen rows of the view's regions.
type layout struct {
	selectorRow int
	inputTop    int
	panelTop    int
	panelHeight int
}

// NewView creates a picker view. The dropdown is built through factory with
// the view's callbacks installed.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	categories driving.CategoryService,
	factory driving.DropdownFactory,
	events driving.EventSink,
) (*View, error) {
	switch {
	case categories == nil:
		return nil, ErrNoCategoryService
	case factory == nil:
		return nil, ErrNoDropdownFactory
	case events == nil:
		return nil, ErrNoEventSink
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewField(s),
		selector:   selector.NewSelector(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		categories: categories,
		events:     events,
		ctx:        context.Background(),
		debounced:  make(chan string),
		done:       make(chan struct{}),
		width:      80,
		height:     24,
	}
	v.dropdown = factory(driving.DropdownHooks{
		OnValueChange:  v.onValueChange,
		OnDebounced:    v.onDebounced,
		OnFocusRequest: func() { v.input.Focus() },
	})
	v.SetDimensions(v.width, v.height)
	v.sync()
	return v, nil
}

// WithContext sets the context for category loading and fetches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the catalog and starts listening for debounced queries.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadCategories(), v.waitForDebounce())
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.CategoriesLoaded:
		if msg.Catalog.Fallback {
			logger.Debug("picker: using fallback categories")
		}
		v.selector.SetCatalog(msg.Catalog)
		cmds = append(cmds, v.runFetch(v.dropdown.SetCatalog(v.ctx, msg.Catalog)))

	case messages.QueryDebounced:
		cmds = append(cmds, v.runFetch(v.dropdown.Debounced(v.ctx, msg.Query)), v.waitForDebounce())

	case messages.FetchCompleted:
		if !v.dropdown.Complete(msg.Completion) {
			logger.Debug("picker: dropped stale completion for %q", msg.Completion.Query)
		}

	case tea.KeyMsg:
		cmds = append(cmds, v.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, v.handleMouse(msg))

	case tea.FocusMsg:
		v.dropdown.Focus()

	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	v.sync()
	cmds = append(cmds, v.flushChanges())
	return v, tea.Batch(cmds...)
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.dropdown.Clear()
		return nil
	case keymap.Matches(msg.String(), v.keymap.NextCategory):
		return v.stepCategory(1)
	case keymap.Matches(msg.String(), v.keymap.PrevCategory):
		return v.stepCategory(-1)
	}

	nav := v.keymap.NavigationKey(msg)
	if nav != domain.KeyNone && v.events.Dispatch(domain.KeyEvent{Key: nav}) {
		return nil
	}

	// Navigation keys the open list did not consume.
	//nolint:exhaustive // only keys with a closed-list meaning
	switch nav {
	case domain.KeyEscape:
		if v.dropdown.Snapshot().Open {
			v.dropdown.Close()
			return nil
		}
		return quit
	case domain.KeyEnter:
		// Results may still be on their way.
		if v.dropdown.Snapshot().Phase == domain.PhaseSearching {
			return nil
		}
		return quit
	case domain.KeyDown:
		v.dropdown.Focus()
		return nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if text := v.input.Value(); text != v.dropdown.Snapshot().Input {
		v.dropdown.Input(text)
	}
	return cmd
}

func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	// Resolve the hit before the dispatch may close the panel.
	l := v.layout()
	index := -1
	if row := msg.Y - l.panelTop; v.dropdown.Snapshot().Phase == domain.PhaseResults {
		index = v.list.IndexAtRow(row)
	}

	v.events.Dispatch(domain.PointerEvent{X: msg.X, Y: msg.Y})

	switch {
	case index >= 0:
		v.dropdown.SelectIndex(index)
	case msg.Y == l.selectorRow:
		if id := v.selector.CategoryAt(msg.X); id != "" {
			return v.switchCategory(id)
		}
	case msg.Y >= l.inputTop && msg.Y < l.inputTop+input.Height:
		v.dropdown.Focus()
		return v.input.Focus()
	}
	return nil
}

func quit() tea.Msg {
	return messages.Quit{}
}

func (v *View) stepCategory(delta int) tea.Cmd {
	snap := v.dropdown.Snapshot()
	if len(snap.Catalog.Categories) < 2 {
		return nil
	}
	next := snap.Catalog.Next(snap.Category)
	if delta < 0 {
		next = snap.Catalog.Prev(snap.Category)
	}
	return v.switchCategory(next)
}

func (v *View) switchCategory(id string) tea.Cmd {
	if id == v.dropdown.Snapshot().Category {
		return nil
	}
	logger.Debug("picker: category %s", id)
	return v.runFetch(v.dropdown.SetCategory(v.ctx, id))
}

func (v *View) loadCategories() tea.Cmd {
	return func() tea.Msg {
		return messages.CategoriesLoaded{Catalog: v.categories.Load(v.ctx)}
	}
}

func (v *View) waitForDebounce() tea.Cmd {
	return func() tea.Msg {
		select {
		case q := <-v.debounced:
			return messages.QueryDebounced{Query: q}
		case <-v.done:
			return nil
		}
	}
}

func (v *View) runFetch(fetch domain.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.FetchCompleted{Completion: fetch()}
	}
}

// onDebounced runs on the debounce timer goroutine.
func (v *View) onDebounced(query string) {
	select {
	case v.debounced <- query:
	case <-v.done:
	}
}

func (v *View) onValueChange(value string) {
	change := messages.ValueChanged{Value: value}
	if v.dropdown != nil {
		if sel := v.dropdown.Snapshot().Selection; sel.Value == value {
			change.Label = sel.Label
		}
	}
	v.changes = append(v.changes, change)
}

func (v *View) flushChanges() tea.Cmd {
	if len(v.changes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(v.changes))
	for i, change := range v.changes {
		cmds[i] = func() tea.Msg { return change }
	}
	v.changes = nil
	return tea.Sequence(cmds...)
}

// sync copies the dropdown state into the components.
func (v *View) sync() {
	snap := v.dropdown.Snapshot()

	if v.input.Value() != snap.Input {
		v.input.SetValue(snap.Input)
	}
	v.input.SetPlaceholder(Placeholder(snap.Catalog, snap.Category))
	v.selector.SetActive(snap.Category)

	var items []domain.ResultItem
	if snap.Phase == domain.PhaseResults {
		items = snap.Search.Items
	}
	v.list.SetItems(items)
	v.list.SetHighlighted(snap.Highlighted)
	v.list.SetSelectedValue(snap.Selection.Value)

	v.statusbar.SetPhase(snap.Phase, len(items))
	v.statusbar.SetSelection(snap.Selection)

	l := v.layout()
	v.dropdown.SetBounds(domain.Rect{
		X:      0,
		Y:      l.inputTop,
		Width:  v.width,
		Height: input.Height + l.panelHeight,
	})
}

func (v *View) layout() layout {
	l := layout{selectorRow: -1}
	row := 1 // header
	if v.selector.Visible() {
		l.selectorRow = row
		row++
	}
	row++ // spacer
	l.inputTop = row
	l.panelTop = row + input.Height
	l.panelHeight = len(v.panelLines(v.dropdown.Snapshot()))
	return l
}

// panelLines renders the region below the text field for the current phase.
func (v *View) panelLines(snap domain.Snapshot) []string {
	switch snap.Phase {
	case domain.PhaseTooShort:
		return []string{v.styles.Muted.Render(
			fmt.Sprintf("  Type at least %d characters to search...", snap.MinLength))}
	case domain.PhaseSearching:
		return []string{v.styles.Muted.Render("  Searching...")}
	case domain.PhaseError:
		return []string{
			v.styles.Error.Render("  ⚠ " + snap.Search.Err),
			v.styles.Muted.Render("  Please try again or contact support"),
		}
	case domain.PhaseNoResults:
		return []string{v.styles.Muted.Render(fmt.Sprintf("  No results found for %q", snap.Input))}
	case domain.PhaseResults:
		lines := strings.Split(v.list.View(), "\n")
		return append(lines, v.styles.Help.Render("  "+status.Hints(v.keymap.ResultsHelp())))
	case domain.PhaseClosed:
	}
	return nil
}

// View renders the picker.
func (v *View) View() string {
	snap := v.dropdown.Snapshot()

	lines := make([]string, 0, 16)
	lines = append(lines, v.styles.Title.Render("lookup")+"  "+
		v.styles.Muted.Render(displayName(snap.Catalog, snap.Category)))
	if v.selector.Visible() {
		lines = append(lines, v.selector.View())
	}
	lines = append(lines, "", v.input.View())
	lines = append(lines, v.panelLines(snap)...)
	lines = append(lines, "", v.statusbar.View())

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// Header, selector, spacers, field, hint and status bar.
	v.list.SetDimensions(width, min(list.DefaultMaxRows, height-11))
	v.statusbar.SetWidth(width)
}

// Dispose stops the debounce listener and tears the dropdown down.
func (v *View) Dispose() {
	v.closeOnce.Do(func() {
		close(v.done)
		v.dropdown.Dispose()
	})
}

// Snapshot returns the dropdown state.
func (v *View) Snapshot() domain.Snapshot {
	return v.dropdown.Snapshot()
}

// Query returns the text in the field.
func (v *View) Query() string {
	return v.input.Value()
}

// Placeholder returns the text field's placeholder.
func (v *View) Placeholder() string {
	return v.input.Placeholder()
}

// Ready returns whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Placeholder returns the field hint for category, e.g. "Search cost centers...".
// Names come from catalog, or from the fallback catalog before it loads.
func Placeholder(catalog domain.Catalog, category string) string {
	return "Search " + lowerWords(displayName(catalog, category)) + "..."
}

func displayName(catalog domain.Catalog, category string) string {
	if _, ok := catalog.Find(category); !ok {
		catalog = domain.FallbackCatalog()
	}
	return catalog.DisplayName(category)
}

// lowerWords lower-cases words except acronyms.
func lowerWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
