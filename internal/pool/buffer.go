package pool

// Buffer is a fixed-size, reusable float32 scratch buffer: the object
// type BufferPool hands out for waveform transport.
type Buffer struct {
	Samples []float32
}

// Reset zeroes the buffer's contents in place so a reused buffer never
// leaks a previous tap's data.
func (b *Buffer) Reset() {
	for i := range b.Samples {
		b.Samples[i] = 0
	}
}

// NewBufferPool builds a Pool of *Buffer, each pre-allocated to bufferSize
// float32 samples.
func NewBufferPool(numBuffers, bufferSize int) *Pool[*Buffer] {
	return New(numBuffers, func() *Buffer {
		return &Buffer{Samples: make([]float32, bufferSize)}
	}, func(b *Buffer) {
		b.Reset()
	})
}
