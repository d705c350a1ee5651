package gamut

import (
	"sync"
	"sync/atomic"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
)

// Key is the structural signature of a color used for memoization. Alpha is
// not part of the key because it does not affect gamut membership.
type Key struct {
	Space      colorspace.Space
	C1, C2, C3 float64
}

// KeyOf returns the cache key for c.
func KeyOf(c colorspace.Color) Key {
	ch := c.Channels()
	return Key{Space: c.Space(), C1: ch[0], C2: ch[1], C3: ch[2]}
}

// Cache memoizes classifications for the lifetime of its owner.
//
// There is no eviction: the key space is bounded by the distinct colors
// queried in one session. Clear exists for callers that want to reset it.
//
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]Classification
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache creates an empty classification cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]Classification),
	}
}

// Get returns the stored classification for k.
func (c *Cache) Get(k Key) (Classification, bool) {
	c.mu.RLock()
	cl, ok := c.entries[k]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return cl, ok
}

// Put stores a classification for k, replacing any previous entry.
func (c *Cache) Put(k Key, cl Classification) {
	c.mu.Lock()
	c.entries[k] = cl
	c.mu.Unlock()
}

// Len reports the number of cached classifications.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of lookups that hit and missed.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear removes every cached classification and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Key]Classification)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}
