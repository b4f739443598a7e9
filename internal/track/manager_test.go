package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndGetTrack(t *testing.T) {
	m := NewManager()
	id := m.CreateTrack("lead")

	tr, ok := m.GetTrack(id)
	require.True(t, ok)
	assert.Equal(t, "lead", tr.Name)
	assert.Equal(t, float32(1), tr.Volume)
	assert.Empty(t, tr.Patterns)
}

func TestManagerGetTrackUnknown(t *testing.T) {
	m := NewManager()
	_, ok := m.GetTrack(42)
	assert.False(t, ok)
}

func TestManagerAddPatternToTrackAppendsCopy(t *testing.T) {
	m := NewManager()
	id := m.CreateTrack("drums")

	p := StepPattern{Steps: []int32{0, -1, 0}, StepsPerBeat: 4}
	require.True(t, m.AddPatternToTrack(id, p))

	p.Steps[0] = 99 // mutating the caller's copy must not affect the stored one
	tr, _ := m.GetTrack(id)
	require.Len(t, tr.Patterns, 1)
	assert.Equal(t, int32(0), tr.Patterns[0].Steps[0])
}

func TestManagerAddPatternToUnknownTrack(t *testing.T) {
	m := NewManager()
	assert.False(t, m.AddPatternToTrack(7, StepPattern{}))
}

func TestManagerUpdateTrackPatternsReplaces(t *testing.T) {
	m := NewManager()
	id := m.CreateTrack("bass")
	m.AddPatternToTrack(id, StepPattern{Steps: []int32{0}})

	replacement := []StepPattern{{Steps: []int32{1, 2}}, {Steps: []int32{3}}}
	require.True(t, m.UpdateTrackPatterns(id, replacement))

	tr, _ := m.GetTrack(id)
	require.Len(t, tr.Patterns, 2)
	assert.Equal(t, []int32{1, 2}, tr.Patterns[0].Steps)
}

func TestManagerRemoveTrack(t *testing.T) {
	m := NewManager()
	id := m.CreateTrack("x")

	assert.True(t, m.RemoveTrack(id))
	assert.False(t, m.RemoveTrack(id))

	_, ok := m.GetTrack(id)
	assert.False(t, ok)
}

func TestManagerGetAllTrackIDs(t *testing.T) {
	m := NewManager()
	id1 := m.CreateTrack("a")
	id2 := m.CreateTrack("b")

	ids := m.GetAllTrackIDs()
	assert.ElementsMatch(t, []int32{id1, id2}, ids)
}

func TestTrackSnapshotIsIndependentCopy(t *testing.T) {
	tr := &Track{ID: 1, Name: "x", Patterns: []StepPattern{{Steps: []int32{0, 1}}}}
	snap := tr.Snapshot()

	snap.Patterns[0].Steps[0] = 55
	assert.Equal(t, int32(0), tr.Patterns[0].Steps[0])
}
