package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesRecognizedOptions(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint32(44100), cfg.SampleRate)
	assert.Equal(t, uint32(512), cfg.BufferFrames)
	assert.Equal(t, uint32(2), cfg.OutputChannels)
	assert.Equal(t, 0, cfg.CacheCapacity)
	assert.Equal(t, 128, cfg.SampleUnitPoolSize)
	assert.Equal(t, 128, cfg.BufferPoolSize)
	assert.Equal(t, 1024, cfg.BufferPoolBufferSize)
	assert.Equal(t, 64, cfg.WaveformQueueCapacity)
	assert.Equal(t, float32(120), cfg.InitialBPM)
	assert.False(t, cfg.InitialIsLooping)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.json")

	cfg := Default()
	cfg.SampleRate = 48000
	cfg.InitialBPM = 140

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sample_rate": 96000}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(96000), cfg.SampleRate)
	assert.Equal(t, 128, cfg.SampleUnitPoolSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
