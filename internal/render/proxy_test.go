package render

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyRendersSilenceWithNoDelegate(t *testing.T) {
	p := NewProxy(120)
	out := []float32{9, 9, 9, 9}
	p.Render(out, 2, 2, Context{})
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
	assert.True(t, p.IsFinished())
}

func TestProxyForwardsToDelegate(t *testing.T) {
	p := NewProxy(120)
	p.SetDelegate(&stubNode{out: []float32{1, 2, 3, 4}})

	out := make([]float32, 4)
	p.Render(out, 2, 2, Context{})
	assert.Equal(t, []float32{1, 2, 3, 4}, out)
}

func TestProxyBPMAndLooping(t *testing.T) {
	p := NewProxy(120)
	assert.Equal(t, float32(120), p.BPM())
	assert.False(t, p.IsLooping())

	p.SetBPM(140)
	p.SetIsLooping(true)
	assert.Equal(t, float32(140), p.BPM())
	assert.True(t, p.IsLooping())
}

// TestProxyS5AtomicDelegateSwap is scenario S5: with a tone delegate
// installed, swap to a silent delegate while renders are concurrently in
// flight. No render observes a torn or nil mid-swap pointer — each call
// sees either the complete old graph or the complete new one.
func TestProxyS5AtomicDelegateSwap(t *testing.T) {
	p := NewProxy(120)
	tone := NewToneSource(440, 44100)
	p.SetDelegate(tone)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	observedNilOrTorn := false
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		out := make([]float32, 8)
		for {
			select {
			case <-stop:
				return
			default:
			}
			d := p.Delegate()
			if d == nil {
				mu.Lock()
				observedNilOrTorn = true
				mu.Unlock()
				return
			}
			p.Render(out, 4, 2, Context{})
		}
	}()

	silent := &stubNode{out: []float32{0, 0, 0, 0, 0, 0, 0, 0}}
	p.SetDelegate(silent)
	close(stop)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, observedNilOrTorn, "proxy delegate must never be nil once a real delegate was installed")
}

func TestProxyResetDelegatesToCurrent(t *testing.T) {
	p := NewProxy(120)
	require.NotPanics(t, func() { p.Reset() })

	tone := NewToneSource(440, 44100)
	tone.Phase = 1.5
	p.SetDelegate(tone)
	p.Reset()
	assert.Equal(t, float32(0), tone.Phase)
}
