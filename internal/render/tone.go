package render

import "math"

const twoPi = 2 * math.Pi

// ToneSource is a fixed-frequency sine oscillator used for diagnostics and
// device validation. It never finishes and writes the same sample to every
// output channel, additively.
type ToneSource struct {
	Phase      float32
	Frequency  float32
	SampleRate float32
}

// NewToneSource constructs a ToneSource at frequency Hz, sampled at
// sampleRate.
func NewToneSource(frequency, sampleRate float32) *ToneSource {
	return &ToneSource{Frequency: frequency, SampleRate: sampleRate}
}

// Render additively writes one sine sample per frame to every channel.
func (t *ToneSource) Render(output []float32, frames, channels int, _ Context) {
	phaseStep := float32(twoPi) * t.Frequency / t.SampleRate

	for f := 0; f < frames; f++ {
		sample := float32(math.Sin(float64(t.Phase)))
		for c := 0; c < channels; c++ {
			output[f*channels+c] += sample
		}
		t.Phase += phaseStep
		if t.Phase >= float32(twoPi) {
			t.Phase -= float32(twoPi)
		}
	}
}

// Reset rewinds the oscillator's phase to zero.
func (t *ToneSource) Reset() {
	t.Phase = 0
}

// IsFinished is always false — a tone source produces continuously.
func (t *ToneSource) IsFinished() bool {
	return false
}
