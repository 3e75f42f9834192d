package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/lookup/internal/adapters/driven/config"
	"github.com/custodia-labs/lookup/internal/adapters/driven/filewatch"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DefaultDirName is the config directory created under the user's home.
const DefaultDirName = ".lookup"

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Keys use dot notation ("search.min_length"); on disk each prefix becomes
// a TOML table.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.lookup/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return Open(filepath.Join(configDir, "config.toml"))
}

// Open creates a store backed by an explicit file path.
// The file does not need to exist yet.
func Open(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string { return config.String(s.value(key)) }

// GetInt accepts the int64 TOML produces as well as values set in process.
func (s *ConfigStore) GetInt(key string) int { return config.Int(s.value(key)) }

func (s *ConfigStore) GetBool(key string) bool { return config.Bool(s.value(key)) }

func (s *ConfigStore) GetStringSlice(key string) []string { return config.Strings(s.value(key)) }

func (s *ConfigStore) value(key string) any {
	v, _ := s.Get(key)
	return v
}

// Set stores a value and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.write()
}

// Save rewrites the file from the current values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write must be called with mu held.
func (s *ConfigStore) write() error {
	encoded, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(s.filePath, encoded, 0600)
}

// Load replaces the values with the file content. A missing file is an
// empty configuration.
func (s *ConfigStore) Load() error {
	tables := map[string]any{}

	raw, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := toml.Unmarshal(raw, &tables); err != nil {
			return fmt.Errorf("parse %s: %w", s.filePath, err)
		}
	}

	flat := flattenMap(tables, "")
	s.mu.Lock()
	s.data = flat
	s.mu.Unlock()
	return nil
}

// Watch reloads the configuration whenever the file changes on disk and
// then calls onChange. A file that fails to parse keeps the previous
// values. Watch blocks until ctx is cancelled.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	return filewatch.Watch(ctx, s.filePath, func() {
		if err := s.Load(); err != nil {
			logger.Warn("config: reload failed, keeping previous values: %v", err)
			return
		}
		logger.Debug("config: reloaded %s", s.filePath)
		if onChange != nil {
			onChange()
		}
	})
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// flattenMap turns TOML tables into dot keys: {"a": {"b": 1}} is {"a.b": 1}.
func flattenMap(tables map[string]any, prefix string) map[string]any {
	flat := make(map[string]any, len(tables))
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, v := range node {
			if prefix != "" {
				k = prefix + "." + k
			}
			if child, ok := v.(map[string]any); ok {
				walk(k, child)
				continue
			}
			flat[k] = v
		}
	}
	walk(prefix, tables)
	return flat
}

// nestMap is the inverse of flattenMap.
// A key that is both a value and a table prefix keeps the value.
func nestMap(flat map[string]any) map[string]any {
	root := make(map[string]any)

	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				if _, taken := node[part]; taken {
					node = nil
					break
				}
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		if node == nil {
			logger.Warn("config: key %q conflicts with an existing value, skipped", key)
			continue
		}
		leaf := parts[len(parts)-1]
		if _, isTable := node[leaf].(map[string]any); isTable {
			logger.Warn("config: key %q conflicts with a table, skipped", key)
			continue
		}
		node[leaf] = value
	}

	return root
}
