// Package pcm defines the immutable interleaved-stereo-float buffer shared
// between the sample cache and every voice playing it.
package pcm

// Data is an immutable sequence of interleaved stereo float samples
// (L R L R ...). Length is always even: New pads an odd-length input with
// one trailing zero.
type Data struct {
	samples []float32
}

// New wraps samples as a Data buffer, padding a single trailing zero if the
// length is odd so every Data value satisfies the even-length invariant.
func New(samples []float32) *Data {
	if len(samples)%2 != 0 {
		padded := make([]float32, len(samples)+1)
		copy(padded, samples)
		samples = padded
	}
	d := &Data{samples: samples}
	return d
}

// Len returns the number of float32 samples (not frames) in the buffer.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.samples)
}

// At returns the sample at index i.
func (d *Data) At(i int) float32 {
	return d.samples[i]
}

// Slice returns the read-only backing samples. Callers must not mutate the
// returned slice; Data is shared across goroutines without synchronization
// on its contents because it never changes after construction.
func (d *Data) Slice() []float32 {
	return d.samples
}

// Properties describes the provenance of a PCM buffer. NumChannels is
// informative only — the renderer always treats PCM as stereo.
type Properties struct {
	SampleRate  uint32
	BitDepth    uint32
	NumChannels uint32
}

// Metadata is carried on registry entries and descriptors.
type Metadata struct {
	SourceSampleRate uint32
	BitDepth         uint32
}
