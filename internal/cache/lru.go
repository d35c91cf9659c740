// Package cache provides a small generic LRU wrapper used for memoizing
// external lookups.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a bounded, goroutine-safe key-value cache with least-recently-used
// eviction. Keys are strings; values are any type.
type LRU[V any] struct {
	c *lru.Cache[string, V]
}

// New creates an LRU holding at most capacity entries.
func New[V any](capacity int) *LRU[V] {
	c, err := lru.New[string, V](capacity)
	if err != nil {
		// Only reachable with a non-positive capacity, which is a
		// programming error at the call site.
		panic(err)
	}
	return &LRU[V]{c: c}
}

// Get returns the cached value for key and marks it recently used.
func (l *LRU[V]) Get(key string) (V, bool) {
	return l.c.Get(key)
}

// Add stores a value, evicting the least recently used entry if full.
func (l *LRU[V]) Add(key string, value V) {
	l.c.Add(key, value)
}

// Clear drops every entry.
func (l *LRU[V]) Clear() {
	l.c.Purge()
}

// Len returns the number of cached entries.
func (l *LRU[V]) Len() int {
	return l.c.Len()
}
