package spectrum

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestNewAnalyzerErrors(t *testing.T) {
	if _, err := NewAnalyzer(0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("sample rate error=%v", err)
	}

	for _, n := range []int{0, 100, 1000, 32768} {
		if _, err := NewAnalyzer(48000, WithFFTSize(n)); !errors.Is(err, ErrInvalidFFTSize) {
			t.Fatalf("size %d error=%v", n, err)
		}
	}
}

func TestAnalyzer_NotReadyBeforeFullFrame(t *testing.T) {
	a, err := NewAnalyzer(48000, WithFFTSize(1024))
	if err != nil {
		t.Fatal(err)
	}

	a.Push(make([]float64, 1000))
	if a.Update() {
		t.Fatal("Update produced a frame from a partial buffer")
	}

	for _, v := range a.CurveDB(nil, []float64{100, 1000}) {
		if v != core.MinDB {
			t.Fatalf("unready curve value %v, want %v", v, core.MinDB)
		}
	}
}

func TestAnalyzer_SinePeak(t *testing.T) {
	sr := 48000.0
	n := 4096
	a, err := NewAnalyzer(sr, WithFFTSize(n), WithSmoothing(0))
	if err != nil {
		t.Fatal(err)
	}

	// Bin-centred sine at 0.5 amplitude.
	freq := 64 * sr / float64(n)
	a.Push(testutil.DeterministicSine(freq, sr, 0.5, n))
	if !a.Update() {
		t.Fatal("expected a frame")
	}

	curve := a.CurveDB(nil, []float64{freq, 8 * freq})
	if math.Abs(curve[0]-(-6.02)) > 0.1 {
		t.Fatalf("peak=%.2f dBFS, want -6.02", curve[0])
	}
	if curve[1] > -60 {
		t.Fatalf("off-peak=%.2f dBFS, want well below the peak", curve[1])
	}
}

func TestAnalyzer_HopGating(t *testing.T) {
	a, err := NewAnalyzer(48000, WithFFTSize(1024), WithOverlap(0.5))
	if err != nil {
		t.Fatal(err)
	}

	a.Push(make([]float64, 1024))
	if !a.Update() {
		t.Fatal("expected first frame")
	}

	a.Push(make([]float64, 100))
	if a.Update() {
		t.Fatal("frame before a full hop")
	}

	a.Push(make([]float64, 412))
	if !a.Update() {
		t.Fatal("expected frame after a hop")
	}

	a.Reset()
	if a.Ready() {
		t.Fatal("Reset should clear the spectrum")
	}
}

func TestAnalyzer_PushZeroAlloc(t *testing.T) {
	a, err := NewAnalyzer(48000)
	if err != nil {
		t.Fatal(err)
	}

	buf := testutil.DeterministicNoise(1, 0.5, 256)
	allocs := testing.AllocsPerRun(100, func() {
		a.Push(buf)
	})
	if allocs != 0 {
		t.Fatalf("Push allocated %.1f times per run", allocs)
	}
}

func TestAnalyzer_ConcurrentPushUpdate(t *testing.T) {
	// Run with -race.
	a, err := NewAnalyzer(48000, WithFFTSize(512))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		buf := testutil.DeterministicSine(1000, 48000, 0.25, 128)
		for {
			select {
			case <-done:
				return
			default:
				a.Push(buf)
			}
		}
	}()

	freqs := LogFrequencies(64, MinDisplayHz, MaxDisplayHz)
	curve := make([]float64, len(freqs))
	for range 200 {
		a.Update()
		curve = a.CurveDB(curve, freqs)
		testutil.RequireFinite(t, curve)
	}

	close(done)
	wg.Wait()
}
