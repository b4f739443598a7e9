package render

import "sync/atomic"

// Proxy is the stable root node the audio callback always holds. Its
// delegate can be swapped atomically by a control thread without the
// audio thread ever observing a torn or partially-constructed graph.
type Proxy struct {
	delegate  atomic.Pointer[Node]
	isLooping atomic.Bool
	bpm       atomic.Uint32 // float32 bits, relaxed
}

// NewProxy constructs a proxy with no delegate, looping disabled, and the
// given initial bpm.
func NewProxy(initialBPM float32) *Proxy {
	p := &Proxy{}
	p.SetBPM(initialBPM)
	return p
}

// Render loads the delegate once with acquire semantics, builds the
// render context from the proxy's current bpm/loop state, and forwards.
// Writes silence if no delegate is installed.
func (p *Proxy) Render(output []float32, frames, channels int, _ Context) {
	delegate := p.delegate.Load()
	if delegate == nil {
		zero(output[:frames*channels])
		return
	}
	ctx := Context{IsLooping: p.IsLooping(), BPM: p.BPM()}
	(*delegate).Render(output, frames, channels, ctx)
}

// SetDelegate atomically installs node as the active delegate with
// release semantics. A nil node makes the proxy render silence.
func (p *Proxy) SetDelegate(node Node) {
	if node == nil {
		p.delegate.Store(nil)
		return
	}
	p.delegate.Store(&node)
}

// Delegate returns the currently installed delegate, or nil.
func (p *Proxy) Delegate() Node {
	d := p.delegate.Load()
	if d == nil {
		return nil
	}
	return *d
}

// Reset resets the current delegate in place, if one is installed.
func (p *Proxy) Reset() {
	if d := p.delegate.Load(); d != nil {
		(*d).Reset()
	}
}

// IsFinished is true if there is no delegate, or the delegate is finished.
func (p *Proxy) IsFinished() bool {
	d := p.delegate.Load()
	if d == nil {
		return true
	}
	return (*d).IsFinished()
}

// SetIsLooping sets the looping flag read by the next render.
func (p *Proxy) SetIsLooping(loop bool) {
	p.isLooping.Store(loop)
}

// IsLooping reports the current looping flag.
func (p *Proxy) IsLooping() bool {
	return p.isLooping.Load()
}

// SetBPM sets the tempo read by the next render.
func (p *Proxy) SetBPM(bpm float32) {
	p.bpm.Store(float32bits(bpm))
}

// BPM returns the current tempo.
func (p *Proxy) BPM() float32 {
	return float32frombits(p.bpm.Load())
}
