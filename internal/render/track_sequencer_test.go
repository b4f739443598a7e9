package render

import (
	"testing"

	"github.com/dtracker-go/engine/internal/pcm"
	"github.com/dtracker-go/engine/internal/sample"
	"github.com/dtracker-go/engine/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleStepPattern(id int32, voicePoolSize int) (*PatternSequencer, Blueprint) {
	data := pcm.New([]float32{0.25, 0.5, 0.75, 1})
	blueprint := Blueprint{id: {RegistryID: id, PCM: data}}
	p := track.StepPattern{Steps: []int32{id}, StepsPerBeat: 1}
	voicePool := newVoicePool(voicePoolSize)
	return NewPatternSequencer(p, blueprint, voicePool, 44100, nil), blueprint
}

// TestTrackSequencerPanIdentity is invariant #7: for pan=0, volume=1, the
// track sequencer's output equals its pattern's output sample-for-sample.
func TestTrackSequencerPanIdentity(t *testing.T) {
	pat, _ := singleStepPattern(0, 1)
	ts := NewTrackSequencer([]*PatternSequencer{pat}, 1, 0)

	ctx := Context{BPM: 1_000_000_000}
	want := make([]float32, 4)
	pat2, _ := singleStepPattern(0, 1)
	pat2.Render(want, 2, 2, ctx)

	got := make([]float32, 4)
	ts.Render(got, 2, 2, ctx)

	assert.Equal(t, want, got)
}

// TestTrackSequencerPanExtreme is invariant #8: pan=-1 silences odd-indexed
// (right channel) samples; pan=+1 silences even-indexed (left channel).
func TestTrackSequencerPanExtreme(t *testing.T) {
	patLeft, _ := singleStepPattern(0, 1)
	left := NewTrackSequencer([]*PatternSequencer{patLeft}, 1, -1)
	outLeft := make([]float32, 4)
	left.Render(outLeft, 2, 2, Context{BPM: 1_000_000_000})
	assert.Equal(t, float32(0), outLeft[1])
	assert.Equal(t, float32(0), outLeft[3])

	patRight, _ := singleStepPattern(0, 1)
	right := NewTrackSequencer([]*PatternSequencer{patRight}, 1, 1)
	outRight := make([]float32, 4)
	right.Render(outRight, 2, 2, Context{BPM: 1_000_000_000})
	assert.Equal(t, float32(0), outRight[0])
	assert.Equal(t, float32(0), outRight[2])
}

func TestTrackSequencerEmptyPatternsIsFinished(t *testing.T) {
	ts := NewTrackSequencer(nil, 1, 0)
	assert.True(t, ts.IsFinished())

	out := make([]float32, 4)
	assert.NotPanics(t, func() { ts.Render(out, 2, 2, Context{}) })
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
}

// TestTrackSequencerS6LoopBoundary is scenario S6: a one-pattern track with
// steps [0,0], is_looping=true. The render in which the pattern completes
// its cycle also resets current_step to 0, so the next render retriggers
// step 0; voices triggered before the loop boundary keep rendering.
func TestTrackSequencerS6LoopBoundary(t *testing.T) {
	data := pcm.New(make([]float32, 2*44100))
	blueprint := Blueprint{0: sample.Descriptor{RegistryID: 0, PCM: data}}
	p := track.StepPattern{Steps: []int32{0, 0}, StepsPerBeat: 1}
	voicePool := newVoicePool(8)
	pat := NewPatternSequencer(p, blueprint, voicePool, 44100, nil)
	ts := NewTrackSequencer([]*PatternSequencer{pat}, 1, 0)

	ctx := Context{BPM: 1_000_000_000, IsLooping: true}
	out := make([]float32, 8)

	// First render triggers both steps (huge bpm collapses the interval),
	// completing one cycle within the same callback.
	ts.Render(out, 4, 2, ctx)
	require.True(t, pat.HasCompletedOneCycle() || pat.pattern.CurrentStep == 0, "loop reset already applied")

	// The loop reset must have fired inside Render: current_index stays 0
	// (only one pattern) and the pattern's own cursor restarts.
	assert.Equal(t, 0, ts.currentIndex)
	assert.NotEmpty(t, pat.active, "voices triggered before the loop boundary keep ringing")
}
