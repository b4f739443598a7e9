package coordinator

import (
	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/render"
)

// pooledVoice adapts a pool.Handle[*render.SampleSource] into a render.Node
// so a single triggered sample (PlaySample) can live directly as a mixer
// child; it releases its handle back to the voice pool the first time the
// underlying voice reports finished.
type pooledVoice struct {
	handle   *pool.Handle[*render.SampleSource]
	released bool
}

func newPooledVoice(handle *pool.Handle[*render.SampleSource]) *pooledVoice {
	return &pooledVoice{handle: handle}
}

func (p *pooledVoice) Render(output []float32, frames, channels int, ctx render.Context) {
	p.handle.Value().Render(output, frames, channels, ctx)
	if p.handle.Value().IsFinished() && !p.released {
		p.released = true
		p.handle.Release()
	}
}

func (p *pooledVoice) Reset() {
	p.handle.Value().Reset()
}

func (p *pooledVoice) IsFinished() bool {
	return p.released || p.handle.Value().IsFinished()
}
