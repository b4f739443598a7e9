// Package transport implements the single-producer/single-consumer bounded
// queue that carries pooled waveform buffers from the audio thread to a
// visualizer thread.
package transport

import (
	"fmt"
	"sync/atomic"

	"github.com/dtracker-go/engine/internal/pool"
)

// ErrInvalidQueueConfiguration is panicked by NewQueue when capacity is
// zero — a construction-time programming error, mirroring
// pool.ErrInvalidPoolConfiguration.
type ErrInvalidQueueConfiguration struct {
	Capacity int
}

func (e ErrInvalidQueueConfiguration) Error() string {
	return fmt.Sprintf("transport: invalid queue configuration, capacity=%d", e.Capacity)
}

// Queue is a bounded lock-free SPSC ring buffer of
// *pool.Handle[*pool.Buffer]. head is owned by the consumer, tail by the
// producer; each side only ever writes its own counter and reads the
// other's, giving the acquire/release pairing a single-producer/
// single-consumer ring needs without a mutex.
type Queue struct {
	slots    []*pool.Handle[*pool.Buffer]
	capacity uint64
	head     atomic.Uint64
	tail     atomic.Uint64
}

// NewQueue constructs a queue with a fixed capacity. Panics with
// ErrInvalidQueueConfiguration if capacity is zero.
func NewQueue(capacity int) *Queue {
	if capacity == 0 {
		panic(ErrInvalidQueueConfiguration{Capacity: capacity})
	}
	return &Queue{
		slots:    make([]*pool.Handle[*pool.Buffer], capacity),
		capacity: uint64(capacity),
	}
}

// TryPush enqueues handle, returning false without blocking if the queue
// is full. On failure the caller owns handle and is responsible for
// releasing it back to its pool. Called only from the producer (audio
// thread).
func (q *Queue) TryPush(handle *pool.Handle[*pool.Buffer]) bool {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail-head == q.capacity {
		return false
	}
	q.slots[tail%q.capacity] = handle
	q.tail.Store(tail + 1)
	return true
}

// TryPop dequeues the oldest handle, returning ok=false if the queue is
// empty. The caller takes ownership of the handle and must Release it.
// Called only from the consumer (visualizer thread).
func (q *Queue) TryPop() (*pool.Handle[*pool.Buffer], bool) {
	head := q.head.Load()
	tail := q.tail.Load()
	if head == tail {
		return nil, false
	}
	idx := head % q.capacity
	handle := q.slots[idx]
	q.slots[idx] = nil
	q.head.Store(head + 1)
	return handle, true
}

// Len reports the number of handles currently queued.
func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Capacity returns the queue's fixed capacity.
func (q *Queue) Capacity() int {
	return int(q.capacity)
}
