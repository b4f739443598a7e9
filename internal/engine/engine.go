// Package engine owns the audio stream lifecycle and the root Proxy->Mixer
// of the render graph, exposing setters the audio thread reads atomically.
package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/dtracker-go/engine/internal/audiobackend"
	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/render"
	"github.com/dtracker-go/engine/internal/transport"
)

// ErrStreamOpenFailed, ErrStreamStartFailed, and ErrStreamStopFailed wrap
// the backend's underlying error with the stage that failed.
var (
	ErrStreamOpenFailed  = fmt.Errorf("engine: stream open failed")
	ErrStreamStartFailed = fmt.Errorf("engine: stream start failed")
	ErrStreamStopFailed  = fmt.Errorf("engine: stream stop failed")
)

// StreamStateReporter receives notifications of engine stream lifecycle
// transitions (opened, started, stopped, closed), for external monitoring.
type StreamStateReporter interface {
	ReportStreamStateChanged(state string)
}

// Engine owns the stream lifecycle and the root Proxy -> Mixer graph.
type Engine struct {
	backend  audiobackend.Backend
	reporter StreamStateReporter

	mu        sync.Mutex
	deviceID  int
	hasDevice bool
	running   bool

	Proxy *render.Proxy
	Mixer *render.Mixer
}

// New constructs an engine with a fresh Proxy/Mixer pair wired to
// bufferPool and waveform. The mixer is installed as the proxy's delegate
// immediately; PlaybackCoordinator mutates the mixer's children, never the
// proxy's delegate itself, once this is set up.
func New(backend audiobackend.Backend, bufferPool *pool.Pool[*pool.Buffer], waveform *transport.Queue, initialBPM float32) *Engine {
	mixer := render.NewMixer(bufferPool, waveform)
	proxy := render.NewProxy(initialBPM)
	proxy.SetDelegate(mixer)

	return &Engine{backend: backend, Proxy: proxy, Mixer: mixer}
}

// SetStateReporter wires a telemetry sink for stream lifecycle
// transitions. May be called at any time; nil disables reporting.
func (e *Engine) SetStateReporter(reporter StreamStateReporter) {
	e.reporter = reporter
}

func (e *Engine) reportState(state string) {
	if e.reporter != nil {
		e.reporter.ReportStreamStateChanged(state)
	}
}

// SetOutputDevice validates deviceID against the backend's enumeration and
// records it for the next Start.
func (e *Engine) SetOutputDevice(deviceID int) error {
	devices, err := e.backend.EnumerateDevices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		if d.ID == deviceID && d.OutputChannels > 0 {
			e.mu.Lock()
			e.deviceID = deviceID
			e.hasDevice = true
			e.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("engine: device %d not usable: %w", deviceID, audiobackend.ErrNoUsableOutputDevice)
}

// Start opens and starts the backend stream with the engine's render
// callback wired to the root proxy. Returns ErrDeviceNotSelected if
// SetOutputDevice was never called successfully.
func (e *Engine) Start(sampleRate, bufferFrames uint32) error {
	e.mu.Lock()
	if !e.hasDevice {
		e.mu.Unlock()
		return audiobackend.ErrDeviceNotSelected
	}
	deviceID := e.deviceID
	e.mu.Unlock()

	cfg := audiobackend.StreamConfig{
		DeviceID:     deviceID,
		Channels:     2,
		SampleRate:   sampleRate,
		BufferFrames: bufferFrames,
	}

	if err := e.backend.Open(cfg, e.render); err != nil {
		return fmt.Errorf("%w: %w", ErrStreamOpenFailed, err)
	}
	e.reportState("opened")

	if err := e.backend.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrStreamStartFailed, err)
	}
	e.reportState("started")

	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	return nil
}

// render is the callback handed to the backend: it forwards to the root
// proxy with channels fixed at 2 and always continues.
func (e *Engine) render(output []float32, frames int, _ float64) bool {
	e.Proxy.Render(output, frames, 2, render.Context{})
	return true
}

// Stop stops the backend stream. The mixer's children are left installed;
// callers that want an empty graph call PlaybackCoordinator.StopPlayback.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	e.mu.Unlock()

	if err := e.backend.Stop(); err != nil {
		return fmt.Errorf("%w: %w", ErrStreamStopFailed, err)
	}
	e.reportState("stopped")
	return nil
}

// Close stops the stream (if running) and releases the backend device.
func (e *Engine) Close() error {
	if err := e.Stop(); err != nil {
		log.Printf("engine: stop during close: %v", err)
	}
	err := e.backend.Close()
	e.reportState("closed")
	return err
}

// IsRunning reports whether the stream has been started and not yet
// stopped.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// SetBPM forwards to the proxy; the audio thread picks it up next
// callback.
func (e *Engine) SetBPM(bpm float32) {
	e.Proxy.SetBPM(bpm)
}

// SetLoopPlayback forwards to the proxy.
func (e *Engine) SetLoopPlayback(loop bool) {
	e.Proxy.SetIsLooping(loop)
}
