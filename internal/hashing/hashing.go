// Package hashing provides position hashing and a node-count cache for perft.
package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// PerftCache remembers perft node counts by position and remaining depth.
type PerftCache struct {
	// table stores counts keyed by Zobrist hash and depth
	table map[cacheKey]cacheEntry
	// maxCapacity limits the number of stored entries (0 = unlimited)
	maxCapacity int

	hits   int
	misses int
}

type cacheKey struct {
	hash  uint64
	depth int
}

// cacheEntry stores a node count with a WeakHash of its position to reject
// Zobrist collisions.
type cacheEntry struct {
	weak  uint32
	nodes int64
}

// NewPerftCache creates an empty cache. maxCapacity of 0 means unlimited
// capacity; once full, new entries are dropped.
func NewPerftCache(maxCapacity int) *PerftCache {
	return &PerftCache{
		table:       make(map[cacheKey]cacheEntry),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the stored node count for the position at depth.
func (c *PerftCache) Lookup(grid chess.Grid, toMove chess.Colour, depth int) (int64, bool) {
	e, ok := c.table[cacheKey{GenerateZobristHash(grid, toMove), depth}]
	if !ok || e.weak != WeakHash(grid) {
		c.misses++
		return 0, false
	}
	c.hits++
	return e.nodes, true
}

// Store records the node count for the position at depth.
func (c *PerftCache) Store(grid chess.Grid, toMove chess.Colour, depth int, nodes int64) {
	key := cacheKey{GenerateZobristHash(grid, toMove), depth}
	if _, exists := c.table[key]; !exists && c.IsFull() {
		return
	}
	c.table[key] = cacheEntry{weak: WeakHash(grid), nodes: nodes}
}

// Hits returns the number of successful lookups.
func (c *PerftCache) Hits() int {
	return c.hits
}

// Misses returns the number of failed lookups.
func (c *PerftCache) Misses() int {
	return c.misses
}

// Len returns the number of stored entries.
func (c *PerftCache) Len() int {
	return len(c.table)
}

// IsFull returns true if the cache has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (c *PerftCache) IsFull() bool {
	return c.maxCapacity > 0 && len(c.table) >= c.maxCapacity
}

// Reset clears the cache and its counters.
func (c *PerftCache) Reset() {
	c.table = make(map[cacheKey]cacheEntry)
	c.hits = 0
	c.misses = 0
}
