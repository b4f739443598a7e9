package audiobackend

import (
	"fmt"
	"sync"
	"time"
)

// FakeBackend is a software-only Backend: it ticks the render callback on
// a goroutine at the cadence implied by the opened stream's buffer size
// and sample rate, discarding the rendered audio. It exists for tests and
// for cmd/trackerctl demos on machines with no real audio device.
type FakeBackend struct {
	devices []DeviceInfo

	mu       sync.Mutex
	cfg      StreamConfig
	cb       Callback
	opened   bool
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	streamT0 time.Time
}

// NewFakeBackend constructs a backend reporting a single fake stereo
// device.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		devices: []DeviceInfo{
			{ID: 0, Name: "fake-stereo-out", OutputChannels: 2, SupportedSampleRates: []int{44100, 48000}},
		},
	}
}

// EnumerateDevices returns the fixed fake device list.
func (b *FakeBackend) EnumerateDevices() ([]DeviceInfo, error) {
	usable := false
	for _, d := range b.devices {
		if d.OutputChannels > 0 {
			usable = true
			break
		}
	}
	if !usable {
		return nil, ErrNoUsableOutputDevice
	}
	return b.devices, nil
}

// Open validates cfg against the fake device and stores the callback.
func (b *FakeBackend) Open(cfg StreamConfig, cb Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cfg.DeviceID < 0 || cfg.DeviceID >= len(b.devices) {
		return fmt.Errorf("audiobackend: unknown device id %d", cfg.DeviceID)
	}
	b.cfg = cfg
	b.cb = cb
	b.opened = true
	return nil
}

// Start launches the callback-ticking goroutine.
func (b *FakeBackend) Start() error {
	b.mu.Lock()
	if !b.opened {
		b.mu.Unlock()
		return ErrDeviceNotSelected
	}
	if b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	b.streamT0 = time.Now()
	cfg := b.cfg
	cb := b.cb
	stopCh := b.stopCh
	doneCh := b.doneCh
	b.mu.Unlock()

	go b.run(cfg, cb, stopCh, doneCh)
	return nil
}

func (b *FakeBackend) run(cfg StreamConfig, cb Callback, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	period := time.Duration(float64(cfg.BufferFrames) / float64(cfg.SampleRate) * float64(time.Second))
	if period <= 0 {
		period = time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	buf := make([]float32, int(cfg.BufferFrames)*cfg.Channels)
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			elapsed := time.Since(b.streamT0).Seconds()
			if !cb(buf, int(cfg.BufferFrames), elapsed) {
				return
			}
		}
	}
}

// Stop signals the ticking goroutine to exit and waits for it.
func (b *FakeBackend) Stop() error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	close(b.stopCh)
	doneCh := b.doneCh
	b.running = false
	b.mu.Unlock()

	<-doneCh
	return nil
}

// Close stops the stream if running and releases the device.
func (b *FakeBackend) Close() error {
	_ = b.Stop()
	b.mu.Lock()
	b.opened = false
	b.mu.Unlock()
	return nil
}
