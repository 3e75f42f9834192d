// Package messages defines Bubbletea message types for the picker.
// Messages carry the dropdown's asynchronous outcomes back to the event loop.
package messages

import (
	"github.com/custodia-labs/lookup/internal/core/domain"
)

// CategoriesLoaded carries the category catalog.
type CategoriesLoaded struct {
	Catalog domain.Catalog
}

// QueryDebounced carries a query emitted by the debouncer.
type QueryDebounced struct {
	Query string
}

// FetchCompleted carries the outcome of a search fetch.
type FetchCompleted struct {
	Completion domain.Completion
}

// ValueChanged reports that the selected value changed. An empty Value
// means the selection was cleared.
type ValueChanged struct {
	Value string
	Label string
}

// ErrorOccurred signals that an error happened outside the dropdown.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
