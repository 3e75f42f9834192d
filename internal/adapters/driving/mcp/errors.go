// Package mcp provides an MCP (Model Context Protocol) server adapter for lookup.
// It lets AI assistants resolve category values through the same lookup
// services and result cache as the interactive picker.
package mcp

import "errors"

var (
	// ErrMissingLookupService is returned when the lookup service is not provided.
	ErrMissingLookupService = errors.New("mcp: lookup service is required")

	// ErrMissingCategoryService is returned when the category service is not provided.
	ErrMissingCategoryService = errors.New("mcp: category service is required")
)
