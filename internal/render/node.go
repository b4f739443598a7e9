// Package render implements the audio-thread render graph: a tree of
// RenderNode implementations composed fresh per playback start and driven,
// once installed, without allocation, locking, or blocking.
package render

// Context is passed by value down the render tree each callback.
type Context struct {
	IsLooping bool
	BPM       float32
}

// Node is the single capability implemented by every audio-producing node.
// Render must not allocate, lock, block on I/O, or perform syscalls — it is
// invoked exclusively from the audio thread.
type Node interface {
	// Render additively or destructively fills frames*channels interleaved
	// float samples into output. Leaf nodes additively mix into a
	// pre-zeroed buffer; compositional nodes provide zeroed scratch to
	// their children and decide mix-vs-overwrite for their own output.
	Render(output []float32, frames, channels int, ctx Context)
	// Reset restores the node to its initial playback state.
	Reset()
	// IsFinished reports whether no further nontrivial output will be
	// produced without a Reset.
	IsFinished() bool
}

func zero(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}
