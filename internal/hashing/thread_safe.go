package hashing

import (
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ThreadSafePerftCache wraps PerftCache with mutex protection for concurrent access.
type ThreadSafePerftCache struct {
	cache *PerftCache
	mu    sync.RWMutex
}

// NewThreadSafePerftCache creates a new thread-safe cache.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafePerftCache(maxCapacity int) *ThreadSafePerftCache {
	return &ThreadSafePerftCache{
		cache: NewPerftCache(maxCapacity),
	}
}

// Lookup returns the stored node count for the position at depth.
// It takes the write lock because lookups update the hit counters.
func (c *ThreadSafePerftCache) Lookup(grid chess.Grid, toMove chess.Colour, depth int) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Lookup(grid, toMove, depth)
}

// Store records the node count for the position at depth.
func (c *ThreadSafePerftCache) Store(grid chess.Grid, toMove chess.Colour, depth int, nodes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Store(grid, toMove, depth, nodes)
}

// Hits returns the number of successful lookups.
func (c *ThreadSafePerftCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Hits()
}

// Len returns the number of stored entries.
func (c *ThreadSafePerftCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// LoadFromCache copies entries from an existing cache. Call before concurrent use.
func (c *ThreadSafePerftCache) LoadFromCache(other *PerftCache) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range other.table {
		c.cache.table[key] = e
	}
}

// IsFull returns true if the cache has reached its capacity limit.
func (c *ThreadSafePerftCache) IsFull() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.IsFull()
}
