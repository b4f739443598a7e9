package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	resets int
}

func newWidgetPool(size int) *Pool[*widget] {
	return New(size, func() *widget { return &widget{} }, func(w *widget) { w.resets++ })
}

func TestPoolInvalidConfigurationPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(0, func() *widget { return &widget{} }, nil)
	})
}

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	p := newWidgetPool(2)

	h1, ok := p.Acquire()
	require.True(t, ok)
	h2, ok := p.Acquire()
	require.True(t, ok)

	_, ok = p.Acquire()
	assert.False(t, ok, "pool of size 2 must be exhausted after two acquires")

	h1.Release()
	h3, ok := p.Acquire()
	require.True(t, ok)
	assert.Equal(t, 1, h3.Value().resets)

	h2.Release()
	h3.Release()
}

// TestPoolExactCapacityAfterArbitrarySequence is invariant #1: after any
// sequence of acquire/drop operations, exactly N handles are acquirable in
// succession before acquire fails.
func TestPoolExactCapacityAfterArbitrarySequence(t *testing.T) {
	const n = 5
	p := newWidgetPool(n)

	var held []*Handle[*widget]
	for i := 0; i < 3; i++ {
		h, ok := p.Acquire()
		require.True(t, ok)
		held = append(held, h)
	}
	for _, h := range held {
		h.Release()
	}
	held = nil

	for i := 0; i < 4; i++ {
		h, ok := p.Acquire()
		require.True(t, ok)
		held = append(held, h)
	}
	held[0].Release()
	held[1].Release()
	held = held[2:]

	acquired := 0
	for {
		h, ok := p.Acquire()
		if !ok {
			break
		}
		held = append(held, h)
		acquired++
	}
	assert.Equal(t, 3, acquired, "three slots are free before this loop, so exactly three more plus the two live handles fill the pool")
	assert.Equal(t, n, len(held))
}

func TestPoolDoubleReleasePanics(t *testing.T) {
	p := newWidgetPool(1)
	h, ok := p.Acquire()
	require.True(t, ok)

	h.Release()
	assert.Panics(t, func() { h.Release() })
}

func TestBufferPoolResetsOnRelease(t *testing.T) {
	p := NewBufferPool(2, 4)

	h, ok := p.Acquire()
	require.True(t, ok)
	buf := h.Value()
	copy(buf.Samples, []float32{1, 2, 3, 4})
	h.Release()

	h2, ok := p.Acquire()
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 0, 0}, h2.Value().Samples)
}
