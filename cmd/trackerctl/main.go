// Command trackerctl is a reference control surface over the engine: it
// loads a config, opens a FakeBackend (no other backend is wired), and
// drives playback through the coordinator. It is a demonstration harness,
// not part of the core module.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtracker-go/engine/internal/audiobackend"
	"github.com/dtracker-go/engine/internal/config"
	"github.com/dtracker-go/engine/internal/coordinator"
	"github.com/dtracker-go/engine/internal/engine"
	"github.com/dtracker-go/engine/internal/pcm"
	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/sample"
	"github.com/dtracker-go/engine/internal/sampleio"
	"github.com/dtracker-go/engine/internal/telemetry"
	"github.com/dtracker-go/engine/internal/track"
	"github.com/dtracker-go/engine/internal/transport"
)

var (
	configPath string
	oscHost    string
	oscPort    int
)

func main() {
	root := &cobra.Command{
		Use:   "trackerctl",
		Short: "Reference control surface for the playback engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file (defaults if omitted)")
	root.PersistentFlags().StringVar(&oscHost, "osc-host", "127.0.0.1", "telemetry OSC destination host")
	root.PersistentFlags().IntVar(&oscPort, "osc-port", 57120, "telemetry OSC destination port")

	root.AddCommand(devicesCmd(), serveCmd(), playCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("trackerctl: %v, falling back to defaults", err)
		return config.Default()
	}
	return cfg
}

func devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List output devices the backend can enumerate",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := audiobackend.NewFakeBackend()
			devices, err := backend.EnumerateDevices()
			if err != nil {
				return err
			}
			for _, d := range devices {
				fmt.Printf("%d\t%s\tchannels=%d\n", d.ID, d.Name, d.OutputChannels)
			}
			return nil
		},
	}
}

// buildStack wires one FakeBackend, Engine, and Coordinator from cfg. It's
// shared by serve and play since both need the full graph running.
func buildStack(cfg config.Config) (*engine.Engine, *coordinator.Coordinator, *sample.Manager, *track.Manager, error) {
	backend := audiobackend.NewFakeBackend()
	bufferPool := pool.NewBufferPool(cfg.BufferPoolSize, cfg.BufferPoolBufferSize)
	waveform := transport.NewQueue(cfg.WaveformQueueCapacity)

	eng := engine.New(backend, bufferPool, waveform, cfg.InitialBPM)
	if err := eng.SetOutputDevice(0); err != nil {
		return nil, nil, nil, nil, err
	}

	reporter := telemetry.NewReporter(oscHost, oscPort)
	eng.SetStateReporter(reporter)
	sampleManager := sample.NewManager(cfg.CacheCapacity)
	trackManager := track.NewManager()

	coord := coordinator.New(eng, sampleManager, trackManager, float32(cfg.SampleRate),
		cfg.SampleUnitPoolSize, cfg.BufferPoolSize, cfg.BufferPoolBufferSize, cfg.WaveformQueueCapacity, reporter)
	coord.SetLoopPlayback(cfg.InitialIsLooping)

	return eng, coord, sampleManager, trackManager, nil
}

func serveCmd() *cobra.Command {
	var wavPaths []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load samples into one track and run the engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			eng, coord, sampleManager, trackManager, err := buildStack(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			steps := make([]int32, 0, len(wavPaths))
			for _, p := range wavPaths {
				data, props, err := sampleio.LoadWAV(p)
				if err != nil {
					return err
				}
				meta := pcm.Metadata{SourceSampleRate: props.SampleRate, BitDepth: props.BitDepth}
				sampleManager.CacheSample(p, data, meta)
				id := sampleManager.AddSample(p, data, meta)
				steps = append(steps, id)
			}

			tid := trackManager.CreateTrack("serve")
			trackManager.AddPatternToTrack(tid, track.StepPattern{Steps: steps, StepsPerBeat: 4})

			if err := eng.Start(cfg.SampleRate, cfg.BufferFrames); err != nil {
				return err
			}
			if err := coord.PlayTrack(tid); err != nil {
				return err
			}

			fmt.Println("serving, press Ctrl+C to stop")
			select {}
		},
	}
	cmd.Flags().StringSliceVar(&wavPaths, "wav", nil, "WAV files to load as the track's steps, in order")
	return cmd
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [wav file]",
		Short: "Play a single WAV file once and run until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			eng, coord, sampleManager, _, err := buildStack(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			path := args[0]
			data, props, err := sampleio.LoadWAV(path)
			if err != nil {
				return err
			}
			meta := pcm.Metadata{SourceSampleRate: props.SampleRate, BitDepth: props.BitDepth}
			sampleManager.CacheSample(path, data, meta)
			id := sampleManager.AddSample(path, data, meta)
			desc, ok := sampleManager.GetSample(id)
			if !ok {
				return fmt.Errorf("trackerctl: sample %d vanished immediately after registration", id)
			}

			if err := eng.Start(cfg.SampleRate, cfg.BufferFrames); err != nil {
				return err
			}
			if !coord.PlaySample(desc) {
				fmt.Fprintln(os.Stderr, "trackerctl: voice pool exhausted, nothing played")
			}

			fmt.Println("playing, press Ctrl+C to stop")
			select {}
		},
	}
	return cmd
}
