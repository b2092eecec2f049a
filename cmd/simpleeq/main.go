// Command simpleeq plays noise through the stereo three-band equalizer.
//
// Parameters are controlled over MQTT (see internal/remote) and optionally
// persisted to a JSON state file. The analytic response curve and the
// measured output spectrum are published for display on
// <topic>/response and <topic>/spectrum.
//
// Usage:
//
//	simpleeq [flags]
//
// Environment variables (EQ_*) provide the defaults; see internal/config.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	dspsignal "github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/internal/audio"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/remote"
	"github.com/cwbudde/algo-eq/param"
)

func main() {
	cfg := config.Load()

	flag.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "output sample rate in Hz")
	flag.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "frames per processing block")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "noise level (linear, 0..1)")
	color := flag.String("noise", "pink", "noise color: white, pink or brown")
	flag.StringVar(&cfg.MQTTBroker, "broker", cfg.MQTTBroker, "MQTT broker URL (empty disables remote control)")
	flag.StringVar(&cfg.StateFile, "state", cfg.StateFile, "parameter state file (empty disables persistence)")
	flag.Parse()

	noiseColor, err := dspsignal.ParseColor(*color)
	if err != nil {
		log.Fatalf("Invalid -noise: %v", err)
	}

	store := param.NewEQStore()
	restoreState(store, cfg.StateFile)

	proc := eq.NewProcessor(
		core.WithSampleRate(float64(cfg.SampleRate)),
		core.WithBlockSize(cfg.BlockSize),
	)

	analyzer, err := spectrum.NewAnalyzer(float64(cfg.SampleRate))
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	proc.SetTap(analyzer)

	if err := proc.PrepareDefault(); err != nil {
		log.Fatalf("Failed to prepare processor: %v", err)
	}
	defer proc.Release()

	var client *remote.Client
	if cfg.MQTTBroker != "" {
		client, err = remote.NewClient(remote.Options{
			Broker:   cfg.MQTTBroker,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			Topic:    cfg.MQTTTopic,
		}, store, log.Default())
		if err != nil {
			log.Fatalf("Failed to create MQTT client: %v", err)
		}
		defer client.Close()
	}

	ctrlOpts := []eq.ControllerOption{eq.WithRefreshRate(cfg.RefreshRate)}
	if client != nil {
		ctrlOpts = append(ctrlOpts, eq.OnUpdate(func(freqs, db []float64) {
			client.PublishCurve("response", freqs, db)
		}))
	}

	ctrl, err := eq.NewController(store, proc, ctrlOpts...)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	player, err := audio.NewPlayer(cfg.SampleRate, cfg.BlockSize, cfg.AudioBuffer)
	if err != nil {
		log.Fatalf("Failed to create audio player: %v", err)
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := ctrl.Run(ctx); err != nil {
			log.Printf("Controller stopped: %v", err)
		}
	}()

	if client != nil {
		go client.Run(ctx, time.Second)
	}

	go spectrumLoop(ctx, analyzer, client, cfg.SpectrumRate)

	player.Start(noiseSource(proc, dspsignal.NewNoise(noiseColor, cfg.Volume, uint64(time.Now().UnixNano()))))
	log.Printf("Playing at %d Hz", cfg.SampleRate)

	<-ctx.Done()
	log.Println("Shutting down...")

	saveState(store, cfg.StateFile)
}

// noiseSource returns a source producing noise from gen filtered by proc.
func noiseSource(proc *eq.Processor, gen *dspsignal.Noise) audio.Source {
	return func(buf []float32) {
		gen.FillStereo(buf)
		proc.ProcessInterleaved(buf)
	}
}

// spectrumLoop analyzes the processed signal and publishes it at rate Hz.
func spectrumLoop(ctx context.Context, a *spectrum.Analyzer, client *remote.Client, rate float64) {
	if client == nil || !(rate > 0) {
		return
	}

	freqs := spectrum.LogFrequencies(256, spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
	db := make([]float64, len(freqs))

	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.Update() {
				db = a.CurveDB(db, freqs)
				client.PublishCurve("spectrum", freqs, db)
			}
		}
	}
}

func saveState(store *param.Store, path string) {
	if path == "" {
		return
	}

	data, err := json.MarshalIndent(store.Snapshot(), "", "  ")
	if err != nil {
		log.Printf("Failed to marshal state: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("Failed to create state directory: %v", err)
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("Failed to save state: %v", err)
	}
}

func restoreState(store *param.Store, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var values map[string]float64
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("Failed to parse saved state: %v", err)
		return
	}

	if err := store.Restore(values); err != nil {
		log.Printf("Restored state with warnings: %v", err)
		return
	}

	log.Printf("Restored %d parameters from %s", len(values), path)
}
