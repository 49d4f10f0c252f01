// Package memo provides small process-local stores used by the scoring
// engines: a bounded memoization cache for expensive enrichment results and
// a velocity tracker for repeated-attempt detection.
//
// Both are heuristic aids, not security boundaries: concurrent writers on
// the same key race with last-writer-wins semantics and that is acceptable.
package memo

import (
	"sync"
	"time"
)

const defaultMaxEntries = 1024

type entry struct {
	value      any
	insertedAt time.Time
}

// Cache is a size-bounded key/value store. Once the bound is reached the
// oldest entries by insertion order are evicted. A miss always falls through
// to recomputation on the caller's side; writes never fail.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	order      []string
	maxEntries int
}

// NewCache creates a cache holding at most maxEntries keys. A non-positive
// bound falls back to a sane default.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
	}
}

// Get returns the cached value for key, if any.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetBool is a convenience accessor for boolean memo entries.
func (c *Cache) GetBool(key string) (bool, bool) {
	v, ok := c.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set stores value under key, evicting the oldest entry when full.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = entry{value: value, insertedAt: time.Now()}
}

// Len returns the current number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
