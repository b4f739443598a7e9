package transport

import (
	"testing"

	"github.com/dtracker-go/engine/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueInvalidConfigurationPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewQueue(0)
	})
}

func TestQueuePushPopOrder(t *testing.T) {
	bufferPool := pool.NewBufferPool(4, 2)
	q := NewQueue(2)

	h1, _ := bufferPool.Acquire()
	h1.Value().Samples[0] = 1
	h2, _ := bufferPool.Acquire()
	h2.Value().Samples[0] = 2

	require.True(t, q.TryPush(h1))
	require.True(t, q.TryPush(h2))

	got1, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, float32(1), got1.Value().Samples[0])
	got1.Release()

	got2, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, float32(2), got2.Value().Samples[0])
	got2.Release()
}

func TestQueueFullPushFails(t *testing.T) {
	bufferPool := pool.NewBufferPool(4, 2)
	q := NewQueue(1)

	h1, _ := bufferPool.Acquire()
	require.True(t, q.TryPush(h1))

	h2, _ := bufferPool.Acquire()
	assert.False(t, q.TryPush(h2))
	h2.Release()

	popped, _ := q.TryPop()
	popped.Release()
}

func TestQueueEmptyPopFails(t *testing.T) {
	q := NewQueue(2)
	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestQueueLenAndCapacity(t *testing.T) {
	bufferPool := pool.NewBufferPool(4, 2)
	q := NewQueue(3)
	assert.Equal(t, 3, q.Capacity())
	assert.Equal(t, 0, q.Len())

	h, _ := bufferPool.Acquire()
	q.TryPush(h)
	assert.Equal(t, 1, q.Len())
}
