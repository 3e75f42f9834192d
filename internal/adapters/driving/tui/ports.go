// Package tui provides the interactive terminal picker for lookup.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Categories loads the category catalog.
	Categories driving.CategoryService

	// NewDropdown builds the dropdown with the picker's callbacks.
	NewDropdown driving.DropdownFactory

	// Events delivers key and pointer events to the dropdown. It must be
	// the sink the dropdowns built by NewDropdown subscribe to.
	Events driving.EventSink
}

// NewPorts creates a new Ports aggregate.
func NewPorts(
	categories driving.CategoryService,
	factory driving.DropdownFactory,
	events driving.EventSink,
) *Ports {
	return &Ports{
		Categories:  categories,
		NewDropdown: factory,
		Events:      events,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Categories == nil {
		return ErrMissingCategoryService
	}
	if p.NewDropdown == nil {
		return ErrMissingDropdownFactory
	}
	if p.Events == nil {
		return ErrMissingEventSink
	}
	return nil
}
