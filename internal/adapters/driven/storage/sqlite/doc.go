// Package sqlite provides a SQLite-backed catalog store for the demo
// search backend.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.CatalogStore: the categories listed
// by /api/config and the items filtered by /api/search/:category.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.lookup/data/catalog.db
package sqlite
