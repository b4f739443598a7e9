package render

import (
	"log"

	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/transport"
)

// WaveformDropReporter receives a notification whenever a mixer's post-mix
// tap drops a frame: the buffer pool was empty or the waveform queue was
// full. Best-effort telemetry, never a correctness signal.
type WaveformDropReporter interface {
	ReportWaveformFrameDropped(trackID int32)
}

// Mixer is a sum-of-children node. Children are typically TrackSequencers
// but the type is not restricted to them. After mixing, it taps its output
// to the waveform side-channel.
type Mixer struct {
	children []Node
	scratch  []float32

	bufferPool *pool.Pool[*pool.Buffer]
	waveform   *transport.Queue

	trackID  int32
	reporter WaveformDropReporter
}

// NewMixer constructs an empty mixer. bufferPool and waveform may both be
// nil, in which case the post-mix tap is skipped (used for the master
// mixer with no consumer wired yet, or in tests).
func NewMixer(bufferPool *pool.Pool[*pool.Buffer], waveform *transport.Queue) *Mixer {
	return &Mixer{
		scratch:    make([]float32, maxScratchFrames*2),
		bufferPool: bufferPool,
		waveform:   waveform,
	}
}

// SetDropReporter wires a telemetry sink for the tap's dropped-frame
// events. trackID is reported verbatim with each event; pass 0 for the
// master mixer, which has no owning track.
func (m *Mixer) SetDropReporter(trackID int32, reporter WaveformDropReporter) {
	m.trackID = trackID
	m.reporter = reporter
}

// Add appends a child node. Issued from the control thread; callers must
// sequence this safely relative to the audio thread (see Proxy).
func (m *Mixer) Add(child Node) {
	m.children = append(m.children, child)
}

// Clear removes all children.
func (m *Mixer) Clear() {
	m.children = m.children[:0]
}

// Render zeroes output, renders each child into scratch and additively
// mixes it in, drops finished children, then taps the result to the
// waveform side-channel.
func (m *Mixer) Render(output []float32, frames, channels int, ctx Context) {
	total := frames * channels
	zero(output[:total])

	if total > len(m.scratch) {
		m.renderChunked(output, frames, channels, ctx)
		return
	}

	scratch := m.scratch[:total]

	kept := m.children[:0]
	for _, child := range m.children {
		zero(scratch)
		child.Render(scratch, frames, channels, ctx)
		for i, v := range scratch {
			output[i] += v
		}
		if !child.IsFinished() {
			kept = append(kept, child)
		}
	}
	m.children = kept

	m.tap(output[:total])
}

// renderChunked handles callbacks larger than the pre-sized scratch buffer
// by rendering in scratch-sized slices, never allocating.
func (m *Mixer) renderChunked(output []float32, frames, channels int, ctx Context) {
	maxFrames := len(m.scratch) / channels
	if maxFrames == 0 {
		return
	}

	remaining := frames
	offset := 0
	for remaining > 0 {
		chunk := remaining
		if chunk > maxFrames {
			chunk = maxFrames
		}
		m.Render(output[offset*channels:(offset+chunk)*channels], chunk, channels, ctx)
		offset += chunk
		remaining -= chunk
	}
}

// tap acquires a buffer from the pool, copies the mixed output into it,
// and pushes it onto the waveform queue. A pool miss or a full queue both
// result in a dropped frame — acceptable per the visualization contract.
func (m *Mixer) tap(mixed []float32) {
	if m.bufferPool == nil || m.waveform == nil {
		return
	}

	handle, ok := m.bufferPool.Acquire()
	if !ok {
		m.reportDrop()
		return
	}

	buf := handle.Value()
	n := len(mixed)
	if n > len(buf.Samples) {
		n = len(buf.Samples)
	}
	copy(buf.Samples, mixed[:n])

	if !m.waveform.TryPush(handle) {
		handle.Release()
		m.reportDrop()
	}
}

// reportDrop notifies the wired reporter of a dropped waveform frame, or
// falls back to a log line if none is wired (the pre-telemetry default).
func (m *Mixer) reportDrop() {
	if m.reporter != nil {
		m.reporter.ReportWaveformFrameDropped(m.trackID)
		return
	}
	log.Printf("render: waveform buffer pool exhausted or queue full, dropping frame (track %d)", m.trackID)
}

// IsFinished is true once every child has been removed.
func (m *Mixer) IsFinished() bool {
	return len(m.children) == 0
}

// Reset is a no-op at the mixer level: children are transient, installed
// and torn down by the playback coordinator rather than replayed in place.
func (m *Mixer) Reset() {}
