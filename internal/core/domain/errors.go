package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCategory indicates the category is not part of the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// Lookup Errors.

	// ErrConfigLoad indicates the category catalog could not be fetched.
	// It is recovered locally by substituting the fallback catalog.
	ErrConfigLoad = errors.New("failed to fetch configuration")

	// ErrSearchFailed indicates the remote source rejected or failed a search.
	// It is surfaced to the user as an error panel.
	ErrSearchFailed = errors.New("search failed")

	// ErrSourceUnavailable indicates no search source is configured.
	ErrSourceUnavailable = errors.New("search source unavailable")

	// ErrDisposed indicates an operation on a dropdown that was torn down.
	ErrDisposed = errors.New("dropdown disposed")
)
