package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is a SQLite-based catalog store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.lookup/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lookup", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL lets the HTTP handlers read while a reseed writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every .up.sql migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_catalog.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying schema version: %w", err)
	}
	return version, nil
}

// Catalog returns the stored categories in seed order.
func (s *Store) Catalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, icon, is_default
		FROM categories ORDER BY position
	`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	catalog := domain.Catalog{Categories: []domain.Category{}}
	for rows.Next() {
		var c domain.Category
		var isDefault int
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &isDefault); err != nil {
			return domain.Catalog{}, fmt.Errorf("scanning category: %w", err)
		}
		if isDefault == 1 {
			catalog.DefaultID = c.ID
		}
		catalog.Categories = append(catalog.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("iterating categories: %w", err)
	}

	return catalog, nil
}

// Search returns the items of category whose value or label contains
// query, case-insensitively, in seed order. A non-positive limit returns
// every match.
func (s *Store) Search(ctx context.Context, category, query string, limit int) ([]domain.ResultItem, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", category).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	if err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	needle := strings.ToLower(query)

	rows, err := s.db.QueryContext(ctx, `
		SELECT value, label FROM items
		WHERE category_id = ?
		  AND (? = '' OR instr(lower(value), ?) > 0 OR instr(lower(label), ?) > 0)
		ORDER BY position
		LIMIT ?
	`, category, needle, needle, needle, limit)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []domain.ResultItem{}
	for rows.Next() {
		var item domain.ResultItem
		if err := rows.Scan(&item.Value, &item.Label); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// Replace swaps the whole catalog for seed in one transaction.
func (s *Store) Replace(ctx context.Context, seed driven.CatalogSeed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}

	catStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, name, description, icon, position, is_default)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing category insert: %w", err)
	}
	defer catStmt.Close()

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (category_id, position, value, label) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer itemStmt.Close()

	for i, c := range seed.Catalog.Categories {
		if _, err := catStmt.ExecContext(ctx, c.ID, c.Name, c.Description, c.Icon, i,
			boolToInt(c.ID == seed.Catalog.DefaultID)); err != nil {
			return fmt.Errorf("inserting category %s: %w", c.ID, err)
		}
		for j, item := range seed.Items[c.ID] {
			if _, err := itemStmt.ExecContext(ctx, c.ID, j, item.Value, item.Label); err != nil {
				return fmt.Errorf("inserting item %s/%s: %w", c.ID, item.Value, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
