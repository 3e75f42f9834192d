// Package domain defines the core business entities for lookup.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResultItem: A value/label pair returned by the search source
//   - Category: A named searchable domain (cost centers, WBS elements, ...)
//   - SearchState: What the fetch coordinator currently shows
//   - Selection: The value the user committed to
//   - Snapshot: A read-only view of the whole dropdown
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
