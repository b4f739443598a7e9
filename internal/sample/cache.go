// Package sample holds the capacity-bounded PCM cache and the registry that
// maps integer sample ids onto cached PCM plus metadata.
package sample

import (
	"container/list"
	"sync"

	"github.com/dtracker-go/engine/internal/pcm"
)

// CacheEntry is one LRU-tracked cache slot.
type CacheEntry struct {
	Data       *pcm.Data
	Properties pcm.Properties
}

// Cache is a capacity-bounded LRU keyed by canonical sample path. Capacity
// zero means unlimited. Shared-readers/single-writer: Contains, Peek, Size,
// and Capacity take the read lock; Insert, Get, Erase, Clear, and
// SetCapacity take the write lock.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type cacheNode struct {
	key   string
	entry CacheEntry
}

// NewCache constructs an LRU cache with the given capacity (0 = unlimited).
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Insert inserts or updates key, moving it to the front of the recency
// order, then evicts from the back until size <= capacity (when capacity >
// 0). On update of an existing key the new data and properties replace the
// old ones.
func (c *Cache) Insert(key string, data *pcm.Data, props pcm.Properties) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		node := el.Value.(*cacheNode)
		node.entry = CacheEntry{Data: data, Properties: props}
		c.order.MoveToFront(el)
	} else {
		node := &cacheNode{key: key, entry: CacheEntry{Data: data, Properties: props}}
		el := c.order.PushFront(node)
		c.entries[key] = el
	}
	c.evictToCapacity()
}

// Get returns the PCM handle for key and promotes it to most-recently-used.
func (c *Cache) Get(key string) (*pcm.Data, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheNode).entry.Data, true
}

// Peek returns the full entry without touching the recency order.
func (c *Cache) Peek(key string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.entries[key]
	if !ok {
		return CacheEntry{}, false
	}
	return el.Value.(*cacheNode).entry, true
}

// Contains reports whether key is present without affecting recency.
func (c *Cache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Erase removes key, reporting whether it was present.
func (c *Cache) Erase(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	return true
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Capacity returns the configured capacity (0 = unlimited).
func (c *Cache) Capacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capacity
}

// SetCapacity changes the capacity, triggering eviction if it shrank below
// the current size.
func (c *Cache) SetCapacity(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity = capacity
	c.evictToCapacity()
}

// evictToCapacity must be called with c.mu held for writing.
func (c *Cache) evictToCapacity() {
	for c.capacity > 0 && len(c.entries) > c.capacity {
		back := c.order.Back()
		if back == nil {
			return
		}
		node := back.Value.(*cacheNode)
		c.order.Remove(back)
		delete(c.entries, node.key)
	}
}
