// Package track holds the project-side track/pattern model and the
// thread-safe registry the control threads mutate while the audio thread
// plays a snapshot built from it.
package track

// StepPattern is a step list plus the sequencer's mutable timing cursors.
// A step value of -1 is a rest; >= 0 selects a sample id. ElapsedMS and
// CurrentStep are runtime state; Clone resets both to zero.
type StepPattern struct {
	Steps        []int32
	StepsPerBeat float32
	ElapsedMS    float32
	CurrentStep  int
}

// Reset clears the pattern's runtime cursors, leaving Steps and
// StepsPerBeat untouched.
func (p *StepPattern) Reset() {
	p.ElapsedMS = 0
	p.CurrentStep = 0
}

// Clone returns a deep copy of the pattern with its cursors reset, the
// copy Manager.AddPatternToTrack and UpdateTrackPatterns store so a stored
// pattern can't be mutated through a caller's reference.
func (p StepPattern) Clone() StepPattern {
	steps := make([]int32, len(p.Steps))
	copy(steps, p.Steps)
	return StepPattern{Steps: steps, StepsPerBeat: p.StepsPerBeat}
}

// Track is an ordered list of patterns plus per-track volume and pan.
type Track struct {
	ID       int32
	Name     string
	Volume   float32 // [0, 1]
	Pan      float32 // [-1, 1]
	Patterns []StepPattern
}

// Snapshot returns a deep copy of the track suitable for handing to a
// control thread building a render subgraph while another control thread
// continues mutating the live track.
func (t *Track) Snapshot() Track {
	patterns := make([]StepPattern, len(t.Patterns))
	for i, p := range t.Patterns {
		patterns[i] = p.Clone()
	}
	return Track{ID: t.ID, Name: t.Name, Volume: t.Volume, Pan: t.Pan, Patterns: patterns}
}
