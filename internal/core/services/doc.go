// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search-select engine lives here:
//
//   - Debouncer: collapses bursts of input into one emission
//   - ResultCache: TTL cache keyed by (category, query), shared process-wide
//   - FetchCoordinator: cache-or-fetch with supersession of stale requests
//   - Navigator: wrap-around highlight over an indexed list
//   - Dropdown: the widget lifecycle composed from the above
//   - EventDispatcher: explicit keyboard/pointer subscriptions
//
// Services are pure Go with no UI dependencies.
package services
