package render

import (
	"log"

	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/sample"
	"github.com/dtracker-go/engine/internal/track"
)

// maxActiveVoices bounds the pre-allocated active-voices slice so Render
// never grows it.
const maxActiveVoices = 64

// maxScratchFrames bounds the pre-sized scratch buffer. Callbacks
// requesting more frames fall back to a chunked render rather than
// allocate.
const maxScratchFrames = 4096

// Blueprint is a pre-resolved map from sample ids to descriptors, assembled
// off the audio thread so PatternSequencer.Render never consults a
// registry.
type Blueprint map[int32]sample.Descriptor

// VoiceExhaustionReporter receives a notification whenever the sample unit
// pool is empty at the moment a step would have triggered a voice. It is
// best-effort telemetry, never a correctness signal.
type VoiceExhaustionReporter interface {
	ReportVoiceStolen()
}

// PatternSequencer plays one pattern by scheduling per-step triggers of
// SampleSource voices acquired from a shared pool.
type PatternSequencer struct {
	pattern    track.StepPattern
	blueprint  Blueprint
	pool       *pool.Pool[*SampleSource]
	sampleRate float32
	reporter   VoiceExhaustionReporter

	hasCompletedOneCycle bool
	active               []*pool.Handle[*SampleSource]
	scratch              []float32
}

// NewPatternSequencer constructs a sequencer for pattern, with blueprint
// resolving every sample id the pattern references, a non-owning reference
// to the shared voice pool, and the engine's sample rate.
func NewPatternSequencer(pattern track.StepPattern, blueprint Blueprint, voicePool *pool.Pool[*SampleSource], sampleRate float32, reporter VoiceExhaustionReporter) *PatternSequencer {
	p := &PatternSequencer{
		pattern:    pattern,
		blueprint:  blueprint,
		pool:       voicePool,
		sampleRate: sampleRate,
		reporter:   reporter,
		active:     make([]*pool.Handle[*SampleSource], 0, maxActiveVoices),
		scratch:    make([]float32, maxScratchFrames*2),
	}
	return p
}

// Render implements the scheduling and mixing algorithm: advance the
// pattern clock, trigger any steps whose interval has elapsed, then
// additively mix every active voice into a pre-zeroed output.
func (p *PatternSequencer) Render(output []float32, frames, channels int, ctx Context) {
	if frames*channels > len(p.scratch) {
		p.renderChunked(output, frames, channels, ctx)
		return
	}

	if ctx.BPM <= 0 {
		ctx.BPM = 1
	}
	msPerBeat := 60000 / ctx.BPM
	stepIntervalMS := msPerBeat / p.pattern.StepsPerBeat

	deltaMS := (float32(frames) / p.sampleRate) * 1000
	p.pattern.ElapsedMS += deltaMS

	for p.pattern.ElapsedMS >= stepIntervalMS && p.pattern.CurrentStep < len(p.pattern.Steps) {
		p.triggerStep(p.pattern.Steps[p.pattern.CurrentStep])

		p.pattern.CurrentStep++
		if p.pattern.CurrentStep >= len(p.pattern.Steps) {
			p.hasCompletedOneCycle = true
		}
		p.pattern.ElapsedMS -= stepIntervalMS
	}

	zero(output[:frames*channels])
	if len(p.active) == 0 {
		return
	}

	scratch := p.scratch[:frames*channels]
	kept := p.active[:0]
	for _, voice := range p.active {
		voice.Value().Render(scratch, frames, channels, ctx)
		for i, v := range scratch {
			output[i] += v
		}

		if voice.Value().IsFinished() {
			voice.Release()
		} else {
			kept = append(kept, voice)
		}
	}
	p.active = kept
}

func (p *PatternSequencer) triggerStep(stepID int32) {
	if stepID < 0 {
		return
	}
	descriptor, ok := p.blueprint[stepID]
	if !ok {
		return
	}

	handle, ok := p.pool.Acquire()
	if !ok {
		if p.reporter != nil {
			p.reporter.ReportVoiceStolen()
		} else {
			log.Printf("render: sample unit pool exhausted, dropping step %d", stepID)
		}
		return
	}

	if len(p.active) >= cap(p.active) {
		handle.Release()
		return
	}

	handle.Value().Reinitialize(descriptor)
	p.active = append(p.active, handle)
}

// renderChunked handles callbacks larger than the pre-sized scratch buffer
// by rendering in scratch-sized slices, never allocating.
func (p *PatternSequencer) renderChunked(output []float32, frames, channels int, ctx Context) {
	maxFrames := len(p.scratch) / channels
	if maxFrames == 0 {
		zero(output[:frames*channels])
		return
	}

	remaining := frames
	offset := 0
	for remaining > 0 {
		chunk := remaining
		if chunk > maxFrames {
			chunk = maxFrames
		}
		p.Render(output[offset*channels:(offset+chunk)*channels], chunk, channels, ctx)
		offset += chunk
		remaining -= chunk
	}
}

// IsFinished is true once the pattern has scheduled every step for a full
// cycle and every voice it triggered has finished ringing out.
func (p *PatternSequencer) IsFinished() bool {
	return p.hasCompletedOneCycle && len(p.active) == 0
}

// Reset clears the pattern's timing cursors and completion flag. It does
// not clear active voices: callers that want an immediate cut must render
// with a zero buffer or wait one cycle, preserving natural tails across
// loop boundaries.
func (p *PatternSequencer) Reset() {
	p.pattern.Reset()
	p.hasCompletedOneCycle = false
}

// HasCompletedOneCycle reports whether the pattern has scheduled its final
// step at least once since the last Reset.
func (p *PatternSequencer) HasCompletedOneCycle() bool {
	return p.hasCompletedOneCycle
}
