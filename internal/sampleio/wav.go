// Package sampleio provides a reference WAV-to-pcm.Data loader: a concrete
// instance of the "audio file decoding" external collaborator the engine
// names but does not implement.
package sampleio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/dtracker-go/engine/internal/pcm"
)

// LoadWAV decodes a PCM WAV file into an interleaved-stereo-float pcm.Data
// buffer plus its properties. Mono files are duplicated to both channels;
// files with more than two channels return an error, since the core is
// stereo-only.
func LoadWAV(path string) (*pcm.Data, pcm.Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pcm.Properties{}, fmt.Errorf("sampleio: open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, pcm.Properties{}, fmt.Errorf("sampleio: %s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, pcm.Properties{}, fmt.Errorf("sampleio: decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels != 1 && channels != 2 {
		return nil, pcm.Properties{}, fmt.Errorf("sampleio: %s has %d channels, only mono and stereo are supported", path, channels)
	}

	samples := make([]float32, 0, len(buf.Data)*2/channels)
	maxVal := float32(int(1) << (decoder.BitDepth - 1))

	for i := 0; i < len(buf.Data); i++ {
		v := float32(buf.Data[i]) / maxVal
		samples = append(samples, v)
		if channels == 1 {
			samples = append(samples, v)
		}
	}

	props := pcm.Properties{
		SampleRate:  uint32(decoder.SampleRate),
		BitDepth:    uint32(decoder.BitDepth),
		NumChannels: uint32(channels),
	}
	return pcm.New(samples), props, nil
}
