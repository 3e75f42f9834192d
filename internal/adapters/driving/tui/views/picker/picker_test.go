package picker

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/adapters/driven/local"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/seed"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/services"
)

// failingSource has no catalog and fails every search.
type failingSource struct{}

func (failingSource) Catalog(context.Context) (domain.Catalog, error) {
	return domain.Catalog{}, fmt.Errorf("%w: connection refused", domain.ErrConfigLoad)
}

func (failingSource) Search(context.Context, string, string) ([]domain.ResultItem, error) {
	return nil, fmt.Errorf("%w: 503 Service Unavailable", domain.ErrSearchFailed)
}

// harness runs the view's commands the way the Bubbletea runtime does and
// feeds the resulting messages back into Update.
type harness struct {
	t       *testing.T
	view    *View
	msgs    chan tea.Msg
	changes []messages.ValueChanged
	quit    bool
}

func newHarness(t *testing.T, source driven.SearchSource) *harness {
	t.Helper()

	dispatcher := services.NewEventDispatcher()
	coordinator := services.NewFetchCoordinator(source, services.NewResultCache(time.Hour), domain.DefaultMinSearchLength)
	factory := services.NewDropdownFactory(services.DropdownConfig{DebounceDelay: 5 * time.Millisecond}, coordinator, dispatcher)

	v, err := NewView(nil, nil, services.NewCategoryService(source), factory, dispatcher)
	require.NoError(t, err)
	v.SetDimensions(120, 30)
	t.Cleanup(v.Dispose)

	h := &harness{t: t, view: v, msgs: make(chan tea.Msg, 64)}
	h.run(v.Init())
	return h
}

func seededSource() driven.SearchSource {
	return local.NewSource(memory.NewCatalogStore(seed.Default()), 0)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go h.exec(cmd)
}

func (h *harness) exec(cmd tea.Cmd) {
	msg := cmd()
	if msg == nil {
		return
	}
	rv := reflect.ValueOf(msg)
	if rv.Kind() == reflect.Slice && rv.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		// Batches run concurrently; sequences run in order.
		_, batch := msg.(tea.BatchMsg)
		for i := 0; i < rv.Len(); i++ {
			sub, _ := rv.Index(i).Interface().(tea.Cmd)
			if sub == nil {
				continue
			}
			if batch {
				go h.exec(sub)
			} else {
				h.exec(sub)
			}
		}
		return
	}
	h.msgs <- msg
}

func (h *harness) send(msg tea.Msg) {
	switch msg := msg.(type) {
	case messages.ValueChanged:
		h.changes = append(h.changes, msg)
		return
	case messages.Quit:
		h.quit = true
		return
	}
	_, cmd := h.view.Update(msg)
	h.run(cmd)
}

// until processes messages until cond holds.
func (h *harness) until(cond func() bool) {
	h.t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case msg := <-h.msgs:
			h.send(msg)
		case <-deadline:
			h.t.Fatalf("condition not reached; phase %s", h.view.Snapshot().Phase)
		}
	}
}

// settle processes messages that arrive within a short quiet period.
func (h *harness) settle() {
	for {
		select {
		case msg := <-h.msgs:
			h.send(msg)
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) key(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) loaded() {
	h.until(func() bool { return !h.view.selector.Loading() })
}

func (h *harness) phase(p domain.Phase) func() bool {
	return func() bool { return h.view.Snapshot().Phase == p }
}

func TestNewView_RequiresDependencies(t *testing.T) {
	dispatcher := services.NewEventDispatcher()
	factory := services.NewDropdownFactory(services.DropdownConfig{},
		services.NewFetchCoordinator(nil, services.NewResultCache(time.Hour), 3), dispatcher)
	cats := services.NewCategoryService(nil)

	_, err := NewView(nil, nil, nil, factory, dispatcher)
	assert.ErrorIs(t, err, ErrNoCategoryService)

	_, err = NewView(nil, nil, cats, nil, dispatcher)
	assert.ErrorIs(t, err, ErrNoDropdownFactory)

	_, err = NewView(nil, nil, cats, factory, nil)
	assert.ErrorIs(t, err, ErrNoEventSink)
}

func TestView_LoadsCategories(t *testing.T) {
	h := newHarness(t, seededSource())
	assert.Contains(t, h.view.View(), "Loading categories...")

	h.loaded()

	snap := h.view.Snapshot()
	assert.Len(t, snap.Catalog.Categories, 2)
	assert.Equal(t, domain.CategoryCostCenter, snap.Category)
	assert.Equal(t, "Search cost centers...", h.view.Placeholder())
	view := h.view.View()
	assert.NotContains(t, view, "Loading categories...")
	assert.Contains(t, view, "WBS Elements")
}

func TestView_FallbackCatalogOnFailure(t *testing.T) {
	h := newHarness(t, failingSource{})
	h.loaded()

	snap := h.view.Snapshot()
	assert.True(t, snap.Catalog.Fallback)
	assert.Len(t, snap.Catalog.Categories, 2)
}

func TestView_TypingShowsResults(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("fin")
	assert.Equal(t, domain.PhaseSearching, h.view.Snapshot().Phase)
	h.until(h.phase(domain.PhaseResults))

	snap := h.view.Snapshot()
	require.Len(t, snap.Search.Items, 1)
	assert.Equal(t, "2000", snap.Search.Items[0].Value)
	view := h.view.View()
	assert.Contains(t, view, "2000 - Finance Department")
	assert.Contains(t, view, "↑↓ navigate · enter select · esc close")
	assert.Contains(t, view, "1 result")
}

func TestView_TooShort(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("fi")

	assert.Equal(t, domain.PhaseTooShort, h.view.Snapshot().Phase)
	assert.Contains(t, h.view.View(), "Type at least 3 characters to search...")
}

func TestView_NoResults(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("zzz")
	h.until(h.phase(domain.PhaseNoResults))

	assert.Contains(t, h.view.View(), `No results found for "zzz"`)
}

func TestView_ErrorPanel(t *testing.T) {
	h := newHarness(t, failingSource{})
	h.loaded()

	h.typeText("abc")
	h.until(h.phase(domain.PhaseError))

	view := h.view.View()
	assert.Contains(t, view, "503 Service Unavailable")
	assert.Contains(t, view, "Please try again or contact support")

	h.typeText("d")
	assert.Equal(t, "abcd", h.view.Query())
}

func TestView_KeyboardSelection(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("department")
	h.until(h.phase(domain.PhaseResults))
	require.Len(t, h.view.Snapshot().Search.Items, 3)

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	assert.Equal(t, 1, h.view.Snapshot().Highlighted)
	h.key(tea.KeyUp)
	h.key(tea.KeyUp)
	assert.Equal(t, 2, h.view.Snapshot().Highlighted, "up wraps to the last item")
	assert.Equal(t, "department", h.view.Query(), "navigation keys do not reach the field")

	h.key(tea.KeyEnter)
	h.settle()

	require.Len(t, h.changes, 1)
	assert.Equal(t, messages.ValueChanged{Value: "3000", Label: "3000 - Marketing Department"}, h.changes[0])
	snap := h.view.Snapshot()
	assert.False(t, snap.Open)
	assert.Empty(t, h.view.Query())
	assert.Equal(t, "3000", snap.Selection.Value)
	assert.Contains(t, h.view.View(), "Selected: 3000 - Marketing Department")
	assert.False(t, h.quit)
}

func TestView_EnterWhileSearchingKeepsPickerOpen(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("fin")
	require.Equal(t, domain.PhaseSearching, h.view.Snapshot().Phase)
	h.key(tea.KeyEnter)

	h.until(h.phase(domain.PhaseResults))
	h.settle()
	assert.False(t, h.quit)
	assert.Equal(t, "fin", h.view.Query())
	assert.Empty(t, h.changes)
}

func TestView_EscapeClosesThenQuits(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("100")
	h.until(h.phase(domain.PhaseResults))

	h.key(tea.KeyEsc)
	assert.Equal(t, domain.PhaseClosed, h.view.Snapshot().Phase)
	assert.Equal(t, "100", h.view.Query())
	assert.False(t, h.quit)

	h.key(tea.KeyDown)
	assert.Equal(t, domain.PhaseResults, h.view.Snapshot().Phase, "down reopens the list")

	h.key(tea.KeyEsc)
	h.key(tea.KeyEsc)
	h.settle()
	assert.True(t, h.quit)
}

func TestView_TabSwitchesCategory(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("alpha")
	h.until(h.phase(domain.PhaseNoResults))

	h.key(tea.KeyTab)
	h.until(h.phase(domain.PhaseResults))

	snap := h.view.Snapshot()
	assert.Equal(t, domain.CategoryWBS, snap.Category)
	assert.Equal(t, "WBS001", snap.Search.Items[0].Value)
	assert.Equal(t, "Search WBS elements...", h.view.Placeholder())

	h.key(tea.KeyShiftTab)
	assert.Equal(t, domain.CategoryCostCenter, h.view.Snapshot().Category)
}

func TestView_ClearResetsSelection(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("100")
	h.until(h.phase(domain.PhaseResults))
	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)
	h.settle()

	h.typeText("x")
	h.key(tea.KeyCtrlU)
	h.settle()

	values := make([]string, len(h.changes))
	for i, c := range h.changes {
		values[i] = c.Value
	}
	assert.Equal(t, []string{"1000", "", ""}, values)
	assert.Empty(t, h.view.Query())
	assert.True(t, h.view.Snapshot().Selection.IsZero())
	assert.True(t, h.view.input.Focused())
}

func TestView_MouseSelectsResult(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("department")
	h.until(h.phase(domain.PhaseResults))

	l := h.view.layout()
	h.send(tea.MouseMsg{X: 4, Y: l.panelTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.settle()

	require.Len(t, h.changes, 1)
	assert.Equal(t, "2000", h.changes[0].Value)
}

func TestView_MouseOutsideCloses(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("department")
	h.until(h.phase(domain.PhaseResults))

	h.send(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	snap := h.view.Snapshot()
	assert.False(t, snap.Open)
	assert.Equal(t, "department", snap.Input)
	assert.Empty(t, h.changes)

	l := h.view.layout()
	h.send(tea.MouseMsg{X: 2, Y: l.inputTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, h.view.Snapshot().Open, "clicking the field reopens the list")
}

func TestView_MouseOnSelectorSwitchesCategory(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	l := h.view.layout()
	require.Equal(t, 1, l.selectorRow)

	x := -1
	for col := 0; col < 120; col++ {
		if h.view.selector.CategoryAt(col) == domain.CategoryWBS {
			x = col
			break
		}
	}
	require.GreaterOrEqual(t, x, 0)

	h.send(tea.MouseMsg{X: x, Y: l.selectorRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, domain.CategoryWBS, h.view.Snapshot().Category)
}

func TestView_FocusReopens(t *testing.T) {
	h := newHarness(t, seededSource())
	h.loaded()

	h.typeText("100")
	h.until(h.phase(domain.PhaseResults))
	h.key(tea.KeyEsc)

	h.send(tea.FocusMsg{})
	assert.True(t, h.view.Snapshot().Open)
}

func TestView_DisposeStopsListener(t *testing.T) {
	h := newHarness(t, seededSource())

	h.view.Dispose()
	h.view.Dispose()

	assert.Nil(t, h.view.waitForDebounce()())
}

func TestPlaceholder(t *testing.T) {
	catalog := domain.Catalog{Categories: []domain.Category{
		{ID: "proj", Name: "Internal Projects"},
		{ID: "sap", Name: "SAP Orders"},
	}}

	tests := []struct {
		name     string
		catalog  domain.Catalog
		category string
		want     string
	}{
		{"cost centers before load", domain.Catalog{}, "cc", "Search cost centers..."},
		{"wbs keeps acronym", domain.FallbackCatalog(), "wbs", "Search WBS elements..."},
		{"loaded catalog", catalog, "proj", "Search internal projects..."},
		{"acronym in loaded catalog", catalog, "sap", "Search SAP orders..."},
		{"unknown id", catalog, "xyz", "Search xyz..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholder(tt.catalog, tt.category))
		})
	}
}
