package render

// TrackSequencer plays a track by stepping through its patterns in order
// and applying per-track gain and pan to the mixed result.
type TrackSequencer struct {
	patterns     []*PatternSequencer
	currentIndex int
	Volume       float32
	Pan          float32
}

// NewTrackSequencer constructs a sequencer over patterns (in track order)
// with the given volume ([0,1]) and pan ([-1,1]).
func NewTrackSequencer(patterns []*PatternSequencer, volume, pan float32) *TrackSequencer {
	return &TrackSequencer{patterns: patterns, Volume: volume, Pan: pan}
}

// Render delegates to the current pattern, applies linear pan-and-gain to
// the stereo result, then advances or loops according to ctx.IsLooping
// once the current pattern completes a cycle.
func (t *TrackSequencer) Render(output []float32, frames, channels int, ctx Context) {
	if len(t.patterns) == 0 {
		zero(output[:frames*channels])
		return
	}

	current := t.patterns[t.currentIndex]
	current.Render(output, frames, channels, ctx)

	if channels == 2 {
		leftGain := t.Volume * (1 - max32(0, t.Pan))
		rightGain := t.Volume * (1 + min32(0, t.Pan))
		for i := 0; i < frames; i++ {
			output[i*2] *= leftGain
			output[i*2+1] *= rightGain
		}
	}

	if !current.HasCompletedOneCycle() {
		return
	}

	if ctx.IsLooping {
		current.Reset()
		t.currentIndex = 0
	} else if t.currentIndex < len(t.patterns)-1 {
		current.Reset()
		t.currentIndex++
	}
}

// IsFinished is true once the track is on its last pattern and that
// pattern has finished rendering. An empty pattern list is always
// finished.
func (t *TrackSequencer) IsFinished() bool {
	if len(t.patterns) == 0 {
		return true
	}
	return t.currentIndex >= len(t.patterns)-1 && t.patterns[t.currentIndex].IsFinished()
}

// Reset returns to the first pattern and resets every contained pattern.
func (t *TrackSequencer) Reset() {
	t.currentIndex = 0
	for _, p := range t.patterns {
		p.Reset()
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
