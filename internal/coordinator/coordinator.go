// Package coordinator implements the choreographer that snapshots registry
// state, builds render subgraphs for requested tracks, and installs them on
// the engine's mixer.
package coordinator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dtracker-go/engine/internal/engine"
	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/render"
	"github.com/dtracker-go/engine/internal/sample"
	"github.com/dtracker-go/engine/internal/track"
	"github.com/dtracker-go/engine/internal/transport"
)

// Coordinator is the PlaybackCoordinator: it holds non-owning references
// to the engine and the two registries, and owns the sample unit pool, the
// buffer pool, and the waveform queues.
type Coordinator struct {
	eng           *engine.Engine
	sampleManager *sample.Manager
	trackManager  *track.Manager

	voicePool  *pool.Pool[*render.SampleSource]
	bufferPool *pool.Pool[*pool.Buffer]

	sampleRate   float32
	reporter     render.VoiceExhaustionReporter
	dropReporter render.WaveformDropReporter

	bpmBits   atomic.Uint32
	isLooping atomic.Bool

	mu          sync.Mutex
	masterQueue *transport.Queue
	trackQueues map[int32]*transport.Queue
}

// New constructs a coordinator. sampleRate must match the engine's
// configured rate; voicePoolSize/bufferPoolSize/bufferSize/waveformQueueCap
// come from config.Config.
func New(
	eng *engine.Engine,
	sampleManager *sample.Manager,
	trackManager *track.Manager,
	sampleRate float32,
	voicePoolSize int,
	bufferPoolSize, bufferSize int,
	waveformQueueCapacity int,
	reporter render.VoiceExhaustionReporter,
) *Coordinator {
	voicePool := pool.New(voicePoolSize,
		func() *render.SampleSource { return render.NewSampleSource() },
		func(v *render.SampleSource) { v.Reset() },
	)
	bufferPool := pool.NewBufferPool(bufferPoolSize, bufferSize)

	// reporter commonly also implements WaveformDropReporter (telemetry.Reporter
	// does); when it does, the same sink carries both voice-stealing and
	// waveform-drop events.
	dropReporter, _ := reporter.(render.WaveformDropReporter)

	c := &Coordinator{
		eng:           eng,
		sampleManager: sampleManager,
		trackManager:  trackManager,
		voicePool:     voicePool,
		bufferPool:    bufferPool,
		sampleRate:    sampleRate,
		reporter:      reporter,
		dropReporter:  dropReporter,
		masterQueue:   transport.NewQueue(waveformQueueCapacity),
		trackQueues:   make(map[int32]*transport.Queue),
	}
	if dropReporter != nil {
		eng.Mixer.SetDropReporter(0, dropReporter)
	}
	return c
}

// MasterWaveformQueue returns the queue fed by the root mixer's tap.
func (c *Coordinator) MasterWaveformQueue() *transport.Queue {
	return c.masterQueue
}

// TrackWaveformQueue returns the per-track queue for id, if one has been
// created by PlayTrack or PlayAllTracks. Per-track taps are bounded by the
// capacity of the coordinator's buffer pool, which they all share.
func (c *Coordinator) TrackWaveformQueue(id int32) (*transport.Queue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.trackQueues[id]
	return q, ok
}

// PlayTrack stops current playback, builds a TrackSequencer for id, and
// installs it as the mixer's sole child.
func (c *Coordinator) PlayTrack(id int32) error {
	c.StopPlayback()

	node, err := c.buildTapped(id)
	if err != nil {
		return err
	}

	c.eng.Mixer.Clear()
	c.eng.Mixer.Add(node)
	return nil
}

// PlayAllTracks stops current playback and installs one TrackSequencer per
// registered track id.
func (c *Coordinator) PlayAllTracks() error {
	c.StopPlayback()

	ids := c.trackManager.GetAllTrackIDs()
	c.eng.Mixer.Clear()

	for _, id := range ids {
		node, err := c.buildTapped(id)
		if err != nil {
			continue
		}
		c.eng.Mixer.Add(node)
	}
	return nil
}

// buildTapped builds a TrackSequencer for id and wraps it in a single-child
// Mixer that taps its own output to a per-track waveform queue, sharing the
// coordinator's buffer pool. Every per-track tap draws from that one
// bounded pool, so a lagging per-track consumer can starve the other
// per-track taps (each miss is a dropped frame); the engine's root mixer
// taps from the buffer pool passed to engine.New, which is not shared.
func (c *Coordinator) buildTapped(id int32) (render.Node, error) {
	ts, err := c.build(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	queue, ok := c.trackQueues[id]
	if !ok {
		queue = transport.NewQueue(c.masterQueue.Capacity())
		c.trackQueues[id] = queue
	}
	c.mu.Unlock()

	tap := render.NewMixer(c.bufferPool, queue)
	if c.dropReporter != nil {
		tap.SetDropReporter(id, c.dropReporter)
	}
	tap.Add(ts)
	return tap, nil
}

// PlaySample acquires a voice from the pool, rearms it with descriptor,
// and adds it directly to the mixer. If the pool is empty the request is
// dropped silently, per the pool-exhaustion error policy.
func (c *Coordinator) PlaySample(descriptor sample.Descriptor) bool {
	handle, ok := c.voicePool.Acquire()
	if !ok {
		if c.reporter != nil {
			c.reporter.ReportVoiceStolen()
		}
		return false
	}
	handle.Value().Reinitialize(descriptor)
	c.eng.Mixer.Add(newPooledVoice(handle))
	return true
}

// StopPlayback clears the mixer and discards per-track waveform queues.
func (c *Coordinator) StopPlayback() {
	c.eng.Mixer.Clear()

	c.mu.Lock()
	c.trackQueues = make(map[int32]*transport.Queue)
	c.mu.Unlock()
}

// build assembles a TrackSequencer for track id: snapshot the track,
// collect every distinct sample id its patterns reference into one
// blueprint, then construct one PatternSequencer per pattern sharing that
// blueprint. Sample ids the registry can't resolve are simply omitted from
// the blueprint, so PatternSequencer treats their steps as rests.
func (c *Coordinator) build(id int32) (*render.TrackSequencer, error) {
	t, ok := c.trackManager.GetTrack(id)
	if !ok {
		return nil, fmt.Errorf("coordinator: unknown track id %d", id)
	}
	snap := t.Snapshot()

	blueprint := make(render.Blueprint)
	for _, p := range snap.Patterns {
		for _, step := range p.Steps {
			if step < 0 {
				continue
			}
			if _, already := blueprint[step]; already {
				continue
			}
			if desc, ok := c.sampleManager.GetSample(step); ok {
				blueprint[step] = desc
			}
		}
	}

	patterns := make([]*render.PatternSequencer, 0, len(snap.Patterns))
	for _, p := range snap.Patterns {
		patterns = append(patterns, render.NewPatternSequencer(p, blueprint, c.voicePool, c.sampleRate, c.reporter))
	}

	return render.NewTrackSequencer(patterns, snap.Volume, snap.Pan), nil
}

// SetBPM stores bpm atomically and propagates it to the engine's proxy.
func (c *Coordinator) SetBPM(bpm float32) {
	c.bpmBits.Store(floatBits(bpm))
	c.eng.SetBPM(bpm)
}

// BPM returns the last value passed to SetBPM.
func (c *Coordinator) BPM() float32 {
	return floatFromBits(c.bpmBits.Load())
}

// SetLoopPlayback stores the flag atomically and propagates it to the
// engine's proxy, from which it reaches sequencers via render.Context.
func (c *Coordinator) SetLoopPlayback(loop bool) {
	c.isLooping.Store(loop)
	c.eng.SetLoopPlayback(loop)
}

// IsLoopPlayback returns the last value passed to SetLoopPlayback.
func (c *Coordinator) IsLoopPlayback() bool {
	return c.isLooping.Load()
}
