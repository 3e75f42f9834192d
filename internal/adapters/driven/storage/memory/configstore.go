// Package memory provides in-memory implementations of driven ports for
// tests and for running the demo backend without a database.
package memory

import (
	"sync"

	"github.com/custodia-labs/lookup/internal/adapters/driven/config"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Save and Load do nothing.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith creates a store holding a copy of values.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string { return config.String(s.value(key)) }

func (s *ConfigStore) GetInt(key string) int { return config.Int(s.value(key)) }

func (s *ConfigStore) GetBool(key string) bool { return config.Bool(s.value(key)) }

func (s *ConfigStore) GetStringSlice(key string) []string { return config.Strings(s.value(key)) }

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }

func (s *ConfigStore) value(key string) any {
	v, _ := s.Get(key)
	return v
}
