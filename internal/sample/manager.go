package sample

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dtracker-go/engine/internal/pcm"
)

// ErrDataNotCached is returned by Manager.AddSampleInstance when the
// requested path has no cached PCM to reference.
var ErrDataNotCached = errors.New("sample: data not cached for path")

// Descriptor is the shared, value-semantics handle a playing voice holds:
// multiple descriptors may reference the same PCM.
type Descriptor struct {
	RegistryID int32
	PCM        *pcm.Data
	Metadata   pcm.Metadata
}

// RegistryEntry is one registered sample instance. Multiple entries may
// share a CacheKey.
type RegistryEntry struct {
	ID       int32
	CacheKey string
	Metadata pcm.Metadata
}

// Manager composes a Cache and an id-keyed registry of entries referencing
// cache keys. The registry is protected by a lock distinct from the
// cache's; the id counter is atomic and monotonic, never reused.
type Manager struct {
	cache *Cache

	mu       sync.RWMutex
	registry map[int32]RegistryEntry
	nextID   atomic.Int32
}

// NewManager constructs a Manager backed by a cache of the given capacity.
func NewManager(cacheCapacity int) *Manager {
	return &Manager{
		cache:    NewCache(cacheCapacity),
		registry: make(map[int32]RegistryEntry),
	}
}

// Cache exposes the underlying LRU cache directly.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// CacheSample inserts data into the cache under path and returns the shared
// PCM handle, without creating a registry entry.
func (m *Manager) CacheSample(path string, data *pcm.Data, meta pcm.Metadata) *pcm.Data {
	m.cache.Insert(path, data, pcm.Properties{
		SampleRate:  meta.SourceSampleRate,
		BitDepth:    meta.BitDepth,
		NumChannels: 2,
	})
	pcmData, _ := m.cache.Get(path)
	return pcmData
}

// AddSample inserts data into the cache under path and creates a new
// registry entry with a fresh monotonic id, returning that id.
func (m *Manager) AddSample(path string, data *pcm.Data, meta pcm.Metadata) int32 {
	m.cache.Insert(path, data, pcm.Properties{
		SampleRate:  meta.SourceSampleRate,
		BitDepth:    meta.BitDepth,
		NumChannels: 2,
	})

	id := m.nextID.Add(1) - 1

	m.mu.Lock()
	m.registry[id] = RegistryEntry{ID: id, CacheKey: path, Metadata: meta}
	m.mu.Unlock()

	return id
}

// AddSampleInstance registers a new instance referencing data already
// present in the cache at path. Returns ErrDataNotCached if path is absent.
func (m *Manager) AddSampleInstance(path string) (int32, error) {
	entry, ok := m.cache.Peek(path)
	if !ok {
		return -1, ErrDataNotCached
	}

	id := m.nextID.Add(1) - 1
	meta := pcm.Metadata{SourceSampleRate: entry.Properties.SampleRate, BitDepth: entry.Properties.BitDepth}

	m.mu.Lock()
	m.registry[id] = RegistryEntry{ID: id, CacheKey: path, Metadata: meta}
	m.mu.Unlock()

	return id, nil
}

// GetSample looks up the registry entry for id, fetches PCM from the cache
// (promoting it in the LRU), and assembles a descriptor. Returns false if
// the id is unknown or the PCM has since been evicted.
func (m *Manager) GetSample(id int32) (Descriptor, bool) {
	m.mu.RLock()
	entry, ok := m.registry[id]
	m.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}

	data, ok := m.cache.Get(entry.CacheKey)
	if !ok {
		return Descriptor{}, false
	}

	return Descriptor{RegistryID: entry.ID, PCM: data, Metadata: entry.Metadata}, true
}

// PeekCache returns the cache entry for path without promoting its recency.
func (m *Manager) PeekCache(path string) (CacheEntry, bool) {
	return m.cache.Peek(path)
}

// Contains reports whether path is cached.
func (m *Manager) Contains(path string) bool {
	return m.cache.Contains(path)
}

// RemoveSample removes the registry entry for id and evicts its cache
// entry. Descriptors already held by playing voices keep working because
// they hold their own reference to the PCM.
func (m *Manager) RemoveSample(id int32) bool {
	m.mu.Lock()
	entry, ok := m.registry[id]
	if ok {
		delete(m.registry, id)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	m.cache.Erase(entry.CacheKey)
	return true
}

// GetAllSampleIDs returns every registered sample id.
func (m *Manager) GetAllSampleIDs() []int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int32, 0, len(m.registry))
	for id := range m.registry {
		ids = append(ids, id)
	}
	return ids
}
