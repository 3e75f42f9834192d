// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SearchSource: The remote lookup endpoint (HTTP JSON)
//   - ConfigStore: Application configuration (TOML)
//   - CatalogStore: Categories and items served by the demo backend (SQLite)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
