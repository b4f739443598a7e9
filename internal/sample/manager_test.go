package sample

import (
	"errors"
	"testing"

	"github.com/dtracker-go/engine/internal/pcm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManagerAddAndGetSampleRoundTrip is invariant #6: add_sample followed
// by get_sample yields a descriptor referring to the same PCM bytes and
// equal metadata.
func TestManagerAddAndGetSampleRoundTrip(t *testing.T) {
	m := NewManager(0)
	data := pcm.New([]float32{0.5, -0.5, 0.5, -0.5})
	meta := pcm.Metadata{SourceSampleRate: 44100, BitDepth: 16}

	id := m.AddSample("a", data, meta)

	desc, ok := m.GetSample(id)
	require.True(t, ok)
	assert.Same(t, data, desc.PCM)
	assert.Equal(t, meta, desc.Metadata)
	assert.Equal(t, id, desc.RegistryID)
}

func TestManagerGetSampleUnknownID(t *testing.T) {
	m := NewManager(0)
	_, ok := m.GetSample(999)
	assert.False(t, ok)
}

func TestManagerAddSampleInstanceRequiresCachedData(t *testing.T) {
	m := NewManager(0)

	_, err := m.AddSampleInstance("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataNotCached))

	m.CacheSample("present", pcm.New([]float32{0, 0}), pcm.Metadata{})
	id, err := m.AddSampleInstance("present")
	require.NoError(t, err)

	_, ok := m.GetSample(id)
	assert.True(t, ok)
}

func TestManagerMultipleInstancesShareCacheData(t *testing.T) {
	m := NewManager(0)
	data := pcm.New([]float32{1, 2, 3, 4})

	id1 := m.AddSample("shared", data, pcm.Metadata{})
	id2, err := m.AddSampleInstance("shared")
	require.NoError(t, err)

	desc1, _ := m.GetSample(id1)
	desc2, _ := m.GetSample(id2)
	assert.Same(t, desc1.PCM, desc2.PCM)
	assert.NotEqual(t, desc1.RegistryID, desc2.RegistryID)
}

func TestManagerRemoveSampleEvictsCacheButLiveDescriptorsSurvive(t *testing.T) {
	m := NewManager(0)
	data := pcm.New([]float32{1, 2})
	id := m.AddSample("a", data, pcm.Metadata{})

	desc, ok := m.GetSample(id)
	require.True(t, ok)

	assert.True(t, m.RemoveSample(id))
	assert.False(t, m.RemoveSample(id))

	_, ok = m.GetSample(id)
	assert.False(t, ok)

	// The caller's already-obtained descriptor still references valid PCM.
	assert.Equal(t, float32(1), desc.PCM.At(0))
}

func TestManagerGetAllSampleIDs(t *testing.T) {
	m := NewManager(0)
	id1 := m.AddSample("a", pcm.New([]float32{0, 0}), pcm.Metadata{})
	id2 := m.AddSample("b", pcm.New([]float32{0, 0}), pcm.Metadata{})

	ids := m.GetAllSampleIDs()
	assert.ElementsMatch(t, []int32{id1, id2}, ids)
}
