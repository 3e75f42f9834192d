package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

type cacheKey struct {
	category string
	query    string
}

type cacheEntry struct {
	items     []domain.ResultItem
	fetchedAt time.Time
}

// ResultCache maps (category, query) to a previously fetched result list.
// Entries older than the TTL are misses; they are not evicted. The cache has
// no size bound and grows for the lifetime of the process.
//
// Cached slices are treated as immutable; callers must not modify returned items.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewResultCache creates a cache with the given TTL.
// A non-positive TTL falls back to domain.DefaultCacheTTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	return &ResultCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var (
	sharedCache     *ResultCache
	sharedCacheOnce sync.Once
)

// SharedCache returns the process-wide cache used by every dropdown and
// lookup service unless one is injected explicitly.
func SharedCache() *ResultCache {
	sharedCacheOnce.Do(func() {
		sharedCache = NewResultCache(domain.DefaultCacheTTL)
	})
	return sharedCache
}

// WithClock replaces the time source. Intended for tests.
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the items cached for (category, query) if present and fresh.
func (c *ResultCache) Get(category, query string) ([]domain.ResultItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{category: category, query: query}]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.items, true
}

// Put stores items for (category, query), replacing any previous entry.
func (c *ResultCache) Put(category, query string, items []domain.ResultItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{category: category, query: query}] = cacheEntry{
		items:     items,
		fetchedAt: c.now(),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry.
func (c *ResultCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// TTL returns the configured time-to-live.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
