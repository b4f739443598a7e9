package track

import (
	"sync"
	"sync/atomic"
)

// Manager is a thread-safe id -> *Track map with a monotonic id counter.
// Shared handles (pointers) let the playback coordinator snapshot one
// track while the control thread continues mutating others.
type Manager struct {
	mu     sync.RWMutex
	tracks map[int32]*Track
	nextID atomic.Int32
}

// NewManager constructs an empty track registry.
func NewManager() *Manager {
	return &Manager{tracks: make(map[int32]*Track)}
}

// CreateTrack registers a new, pattern-less track and returns its id.
func (m *Manager) CreateTrack(name string) int32 {
	id := m.nextID.Add(1) - 1

	m.mu.Lock()
	m.tracks[id] = &Track{ID: id, Name: name, Volume: 1, Pan: 0}
	m.mu.Unlock()

	return id
}

// GetTrack returns the shared track handle for id, or false if unknown.
func (m *Manager) GetTrack(id int32) (*Track, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tracks[id]
	return t, ok
}

// AddPatternToTrack appends a copy of pattern to track id's pattern list.
func (m *Manager) AddPatternToTrack(id int32, pattern StepPattern) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tracks[id]
	if !ok {
		return false
	}
	t.Patterns = append(t.Patterns, pattern.Clone())
	return true
}

// UpdateTrackPatterns replaces track id's entire pattern list.
func (m *Manager) UpdateTrackPatterns(id int32, patterns []StepPattern) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tracks[id]
	if !ok {
		return false
	}
	next := make([]StepPattern, len(patterns))
	for i, p := range patterns {
		next[i] = p.Clone()
	}
	t.Patterns = next
	return true
}

// RemoveTrack deletes track id, reporting whether it was present.
func (m *Manager) RemoveTrack(id int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tracks[id]; !ok {
		return false
	}
	delete(m.tracks, id)
	return true
}

// GetAllTrackIDs returns every registered track id.
func (m *Manager) GetAllTrackIDs() []int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int32, 0, len(m.tracks))
	for id := range m.tracks {
		ids = append(ids, id)
	}
	return ids
}
