package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with its own clock. Entries are replaced, never
// mutated in place.
type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
}

// Cache is a concurrency-safe in-memory key→value store with per-entry TTL.
// Expiry is lazy: an expired entry is evicted the first time a Get touches it,
// which keeps the happy path O(1) with no timer goroutine. Clean exists only
// so an operator can reclaim memory from entries nobody reads after expiry.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration

	now func() time.Time // overridable in tests
}

// New constructs a cache whose entries default to defaultTTL when Set is
// called with a non-positive ttl.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value for key, or false if the key was never set or its TTL
// has elapsed. An expired entry is evicted as a side effect of the lookup.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.createdAt) > e.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally overwriting any existing entry
// and resetting its clock. A non-positive ttl uses the cache default.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, createdAt: c.now(), ttl: ttl}
}

// Delete removes key and reports whether an entry existed.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear drops all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Size counts stored entries, including ones that are logically expired but
// not yet lazily evicted.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clean eagerly evicts every expired entry and returns how many were removed.
// This is the only O(n) operation; it is never required for correctness.
func (c *Cache[V]) Clean() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if now.Sub(e.createdAt) > e.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
