package domain

// ResultItem is a single entry returned by the search source.
// Value is the canonical identifier; Label is display text.
type ResultItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SearchState is what the fetch coordinator currently exposes.
type SearchState struct {
	// Category is the category of the most recent search.
	Category string

	// Query is the most recent query handed to the coordinator.
	Query string

	// Items are the results for Query, in source order.
	Items []ResultItem

	// Loading is true only while a fetch for Query is outstanding.
	Loading bool

	// Err is a human-readable message for the last failed fetch, or empty.
	Err string
}

// HasError returns true if the last fetch failed.
func (s SearchState) HasError() bool {
	return s.Err != ""
}

// Completion is the outcome of a network fetch.
// Token identifies the coordinator request that produced it; a completion
// whose token is no longer live is discarded without touching state.
type Completion struct {
	Token    uint64
	Category string
	Query    string
	Items    []ResultItem
	Err      error
}

// Fetch performs a pending network lookup and reports its outcome.
// It is safe to run on any goroutine; the Completion must be handed back
// to the coordinator on its owning event loop.
type Fetch func() Completion

// Selection is the value the user committed to, atomically with its label.
type Selection struct {
	Value string
	Label string
}

// IsZero returns true if nothing is selected.
func (s Selection) IsZero() bool {
	return s.Value == "" && s.Label == ""
}

// Phase is the display state of the dropdown.
type Phase string

// Dropdown phases.
const (
	PhaseClosed    Phase = "closed"
	PhaseTooShort  Phase = "too-short"
	PhaseSearching Phase = "searching"
	PhaseError     Phase = "error"
	PhaseNoResults Phase = "no-results"
	PhaseResults   Phase = "showing-results"
)

// String returns the string representation.
func (p Phase) String() string {
	return string(p)
}

// Snapshot is a read-only copy of the dropdown state for renderers.
type Snapshot struct {
	Input       string
	Selection   Selection
	Search      SearchState
	Open        bool
	Highlighted int
	Phase       Phase
	Category    string
	Catalog     Catalog
	MinLength   int
}

// HighlightedItem returns the highlighted item, or nil if none.
func (s Snapshot) HighlightedItem() *ResultItem {
	if s.Highlighted < 0 || s.Highlighted >= len(s.Search.Items) {
		return nil
	}
	return &s.Search.Items[s.Highlighted]
}
