// Package telemetry reports real-time engine events — pool exhaustion,
// voice stealing, stream lifecycle transitions — to an OSC listener. None
// of it sits on the audio thread's hot path: every report here is a
// non-blocking channel send, with the actual UDP write done by a
// background goroutine so a caller on the audio thread never performs the
// syscall itself.
package telemetry

import (
	"log"

	"github.com/hypebeast/go-osc/osc"
)

// eventQueueCapacity bounds the channel draining to the OSC goroutine. A
// full queue drops the event rather than block the caller, the same
// best-effort contract the pool's waveform tap uses for dropped frames.
const eventQueueCapacity = 256

type event struct {
	address string
	trackID int32
	state   string
}

// Reporter publishes engine events as OSC messages, the same
// osc.NewClient/osc.NewMessage shape the teacher repo uses to talk to its
// synthesis backend. Report* methods enqueue onto a buffered channel and
// return immediately; a single background goroutine performs the actual
// osc.Client.Send.
type Reporter struct {
	client *osc.Client
	events chan event
}

// NewReporter dials an OSC client targeting host:port and starts the
// background send loop. No connection is actually established until the
// first message is sent (OSC is connectionless UDP).
func NewReporter(host string, port int) *Reporter {
	r := &Reporter{
		client: osc.NewClient(host, port),
		events: make(chan event, eventQueueCapacity),
	}
	go r.run()
	return r
}

func (r *Reporter) run() {
	for e := range r.events {
		switch e.address {
		case "/engine/voice_stolen":
			r.send(osc.NewMessage(e.address))
		case "/engine/waveform_dropped":
			msg := osc.NewMessage(e.address)
			msg.Append(e.trackID)
			r.send(msg)
		case "/engine/stream_state":
			msg := osc.NewMessage(e.address)
			msg.Append(e.state)
			r.send(msg)
		}
	}
}

func (r *Reporter) enqueue(e event) {
	select {
	case r.events <- e:
	default:
		log.Printf("telemetry: event queue full, dropping %s", e.address)
	}
}

// ReportVoiceStolen implements render.VoiceExhaustionReporter: a pattern
// step wanted a voice but the sample unit pool was empty. Called from the
// audio thread; the enqueue is a non-blocking channel send.
func (r *Reporter) ReportVoiceStolen() {
	r.enqueue(event{address: "/engine/voice_stolen"})
}

// ReportWaveformFrameDropped implements render.WaveformDropReporter: a
// mixer's tap missed its buffer pool or hit a full transport queue. Also
// called from the audio thread.
func (r *Reporter) ReportWaveformFrameDropped(trackID int32) {
	r.enqueue(event{address: "/engine/waveform_dropped", trackID: trackID})
}

// ReportStreamStateChanged implements engine.StreamStateReporter: engine
// stream lifecycle transitions (opened, started, stopped, closed), called
// from control threads.
func (r *Reporter) ReportStreamStateChanged(state string) {
	r.enqueue(event{address: "/engine/stream_state", state: state})
}

func (r *Reporter) send(msg *osc.Message) {
	if err := r.client.Send(msg); err != nil {
		log.Printf("telemetry: send %s: %v", msg.Address, err)
	}
}
