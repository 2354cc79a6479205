package vision

import (
	"sync"
	"time"

	"go-deskpilot/pkg/models"
)

// CacheKey identifies one screen observation: the frame identity, the frame
// modification time and the canonical region-of-interest set. A frame whose
// identity/mod-time pair changes can never hit a stale entry.
type CacheKey struct {
	ImageID string
	ModTime int64
	Regions string
}

// KeyFor builds the cache key for a frame and a region set.
func KeyFor(shot *models.Screenshot, regions []models.Box) CacheKey {
	return CacheKey{
		ImageID: shot.ID,
		ModTime: shot.ModTime.UnixNano(),
		Regions: models.CanonicalRegions(regions),
	}
}

type cacheEntry struct {
	payload  models.Perception
	storedAt time.Time
}

// Cache memoizes perception payloads. It is shared across concurrent command
// runs; concurrent writes to the same key are idempotent, so no per-key
// in-flight coordination is needed.
type Cache struct {
	mu         sync.RWMutex
	entries    map[CacheKey]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewCache creates a cache with the given expiry and capacity. The clock is
// injected so expiry is testable without real timestamps.
func NewCache(ttl time.Duration, maxEntries int, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}
	return &Cache{
		entries:    make(map[CacheKey]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

// Get returns the cached payload for key if present and not expired.
func (c *Cache) Get(key CacheKey) (models.Perception, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return models.Perception{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().Sub(cur.storedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return models.Perception{}, false
	}
	return entry.payload, true
}

// Put stores a payload, evicting expired entries and then the oldest ones
// when over capacity.
func (c *Cache) Put(key CacheKey, p models.Perception) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	for len(c.entries) >= c.maxEntries {
		var oldestKey CacheKey
		var oldest time.Time
		first := true
		for k, e := range c.entries {
			if first || e.storedAt.Before(oldest) {
				oldestKey, oldest, first = k, e.storedAt, false
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = cacheEntry{payload: p, storedAt: now}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
