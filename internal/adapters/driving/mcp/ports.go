package mcp

import (
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Lookup resolves queries within a category.
	Lookup driving.LookupService

	// Categories loads the category catalog.
	Categories driving.CategoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Categories == nil {
		return ErrMissingCategoryService
	}
	return nil
}
