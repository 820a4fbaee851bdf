package application

import (
	"sync"
	"time"
)

// lookupCache stores recent person directory lookups so repeated previews of
// the same identifier do not hit the repository while the directory remains
// unchanged. Entries expire after a short TTL and the whole cache is
// invalidated whenever a staff record mutates.
type lookupCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]lookupCacheEntry
}

type lookupCacheEntry struct {
	person    Person
	found     bool
	expiresAt time.Time
}

func newLookupCache(ttl time.Duration, maxEntries int, now func() time.Time) *lookupCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if now == nil {
		now = time.Now
	}
	return &lookupCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]lookupCacheEntry),
	}
}

func (c *lookupCache) Get(identifier string) (Person, bool, bool) {
	if c == nil {
		return Person{}, false, false
	}
	c.mu.RLock()
	entry, ok := c.entries[identifier]
	c.mu.RUnlock()
	if !ok {
		return Person{}, false, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, identifier)
		c.mu.Unlock()
		return Person{}, false, false
	}
	return entry.person, entry.found, true
}

func (c *lookupCache) Store(identifier string, person Person, found bool) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[identifier] = lookupCacheEntry{person: person, found: found, expiresAt: expiry}
}

func (c *lookupCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]lookupCacheEntry)
	c.mu.Unlock()
}

func (c *lookupCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *lookupCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
