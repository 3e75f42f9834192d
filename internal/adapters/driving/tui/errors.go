package tui

import "errors"

// ErrMissingCategoryService is returned when the category service is not provided.
var ErrMissingCategoryService = errors.New("tui: category service is required")

// ErrMissingDropdownFactory is returned when the dropdown factory is not provided.
var ErrMissingDropdownFactory = errors.New("tui: dropdown factory is required")

// ErrMissingEventSink is returned when the event sink is not provided.
var ErrMissingEventSink = errors.New("tui: event sink is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
