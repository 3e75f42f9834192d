package picker

import "errors"

// Error definitions for the picker view.
var (
	// ErrNoCategoryService indicates that no category service was provided.
	ErrNoCategoryService = errors.New("category service is required")

	// ErrNoDropdownFactory indicates that no dropdown factory was provided.
	ErrNoDropdownFactory = errors.New("dropdown factory is required")

	// ErrNoEventSink indicates that no event sink was provided.
	ErrNoEventSink = errors.New("event sink is required")
)
