package render

import "github.com/dtracker-go/engine/internal/sample"

// SampleSource is a voice playing a single sample.Descriptor from a
// position cursor measured in interleaved samples, not frames. It
// overwrites its output buffer rather than mixing additively — the
// compositional parent (PatternSequencer) owns additive mixing.
type SampleSource struct {
	descriptor sample.Descriptor
	position   int

	// IsCheckedOut mirrors the pool's own bookkeeping on the object itself:
	// Reinitialize sets it and Reset clears it. Nothing here checks it;
	// double checkout and double release are detected by the pool.
	IsCheckedOut bool
}

// NewSampleSource constructs an unarmed voice. Reinitialize must be called
// before Render produces anything meaningful.
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// Reinitialize rearms a pooled voice with a new descriptor without
// allocating, resetting its position to zero.
func (s *SampleSource) Reinitialize(descriptor sample.Descriptor) {
	s.descriptor = descriptor
	s.position = 0
	s.IsCheckedOut = true
}

// Render copies min(remaining, frames*channels) floats from the
// descriptor's PCM starting at the cursor. Channel counts other than 2
// yield silence; a shorter remaining tail is zero-padded and the voice
// reports finished on the next call.
func (s *SampleSource) Render(output []float32, frames, channels int, _ Context) {
	total := frames * channels

	if s.descriptor.PCM == nil || channels != 2 {
		zero(output[:total])
		return
	}

	remaining := s.descriptor.PCM.Len() - s.position
	if remaining < 0 {
		remaining = 0
	}
	toCopy := total
	if remaining < toCopy {
		toCopy = remaining
	}

	src := s.descriptor.PCM.Slice()
	copy(output[:toCopy], src[s.position:s.position+toCopy])
	if toCopy < total {
		zero(output[toCopy:total])
	}
	s.position += toCopy
}

// IsFinished reports whether the cursor has reached the end of the PCM.
func (s *SampleSource) IsFinished() bool {
	if s.descriptor.PCM == nil {
		return true
	}
	return s.position >= s.descriptor.PCM.Len()
}

// Reset rewinds the position cursor without discarding the descriptor, so
// the voice can be replayed, and clears IsCheckedOut.
func (s *SampleSource) Reset() {
	s.position = 0
	s.IsCheckedOut = false
}
