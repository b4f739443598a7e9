// Package audiobackend names the hardware audio collaborator the engine
// core requires but does not implement: device enumeration and stream
// lifecycle. It also supplies an in-process FakeBackend so the rest of the
// module has something concrete to run against in tests and CLI demos.
package audiobackend

import "fmt"

// DeviceInfo describes one enumerable output device.
type DeviceInfo struct {
	ID                 int
	Name               string
	OutputChannels     int
	SupportedSampleRates []int
}

// StreamConfig configures a stream opened against a device.
type StreamConfig struct {
	DeviceID     int
	Channels     int
	SampleRate   uint32
	BufferFrames uint32
}

// Callback is the host-provided render callback: it fills output with
// frames*channels interleaved float32 samples and returns false to signal
// the backend should stop the stream.
type Callback func(output []float32, frames int, streamTimeSeconds float64) (continueStreaming bool)

// ErrNoUsableOutputDevice is returned when enumeration finds no device
// with OutputChannels > 0.
var ErrNoUsableOutputDevice = fmt.Errorf("audiobackend: no usable output device")

// ErrDeviceNotSelected is returned by Start when called without a prior
// successful Open.
var ErrDeviceNotSelected = fmt.Errorf("audiobackend: no device selected")

// Backend is the external collaborator: device enumeration plus stream
// open/start/stop/close. The core supplies Callback; the backend invokes
// it at its own cadence.
type Backend interface {
	EnumerateDevices() ([]DeviceInfo, error)
	Open(cfg StreamConfig, cb Callback) error
	Start() error
	Stop() error
	Close() error
}
