// Package config loads and saves engine configuration — sample rate, pool
// sizes, queue capacities — distinct from project/track/pattern state,
// which this core never persists.
package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds every recognized engine option.
type Config struct {
	SampleRate           uint32  `json:"sample_rate"`
	BufferFrames         uint32  `json:"buffer_frames"`
	OutputChannels       uint32  `json:"output_channels"`
	CacheCapacity        int     `json:"cache_capacity"`
	SampleUnitPoolSize   int     `json:"sample_unit_pool_size"`
	BufferPoolSize       int     `json:"buffer_pool_size"`
	BufferPoolBufferSize int     `json:"buffer_pool_buffer_size"`
	WaveformQueueCapacity int    `json:"waveform_queue_capacity"`
	InitialBPM           float32 `json:"initial_bpm"`
	InitialIsLooping     bool    `json:"initial_is_looping"`
}

// Default returns the recognized-options defaults from the engine's
// external interface contract.
func Default() Config {
	return Config{
		SampleRate:            44100,
		BufferFrames:          512,
		OutputChannels:        2,
		CacheCapacity:         0,
		SampleUnitPoolSize:    128,
		BufferPoolSize:        128,
		BufferPoolBufferSize:  1024,
		WaveformQueueCapacity: 64,
		InitialBPM:            120,
		InitialIsLooping:      false,
	}
}

// Load reads a JSON config file, filling any field the file omits with
// Default's value for that field.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON to path.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
