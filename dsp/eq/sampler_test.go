package eq

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func newSampledChain(t *testing.T, s ChainSettings, sampleRate float64) (*Chain, *Sampler) {
	t.Helper()

	c := NewChain()
	if err := c.UpdateFromSettings(s, sampleRate); err != nil {
		t.Fatal(err)
	}

	return c, NewSampler(c)
}

func TestSampler_PeakBoostScenario(t *testing.T) {
	s := ChainSettings{
		PeakFreq:     1000,
		PeakGainDB:   6,
		PeakQ:        1,
		LowCutFreq:   20,
		HighCutFreq:  20000,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
	_, sampler := newSampledChain(t, s, 44100)

	got := sampler.MagnitudeDB([]float64{1000, 20}, 44100)

	testutil.RequireWithinDB(t, "1 kHz", got[0], 6, 0.2)

	// The peak contributes almost nothing at 20 Hz; the low cut is at its
	// -3 dB corner.
	testutil.RequireWithinDB(t, "20 Hz", got[1], -3.01, 0.1)
}

func TestSampler_PeakGainAtCentre(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000} {
		for _, gain := range []float64{-24, -6, 0.5, 12, 24} {
			for _, freq := range []float64{100, 1000, 5000} {
				s := DefaultSettings()
				s.PeakFreq, s.PeakGainDB, s.PeakQ = freq, gain, 2

				c, _ := newSampledChain(t, s, sr)
				snap := c.Snapshot()

				if got := snap.Peak.MagnitudeDB(freq, sr); math.Abs(got-gain) > 0.1 {
					t.Errorf("sr=%v freq=%v: peak=%.3f dB, want %v", sr, freq, got, gain)
				}
			}
		}
	}
}

func TestSampler_FlatByDefault(t *testing.T) {
	_, sampler := newSampledChain(t, DefaultSettings(), testSampleRate)

	freqs := spectrum.LogFrequencies(64, 100, 5000)
	for i, db := range sampler.MagnitudeDB(freqs, testSampleRate) {
		if math.Abs(db) > 0.05 {
			t.Fatalf("%.1f Hz: %.3f dB, want flat", freqs[i], db)
		}
	}
}

func TestSampler_LowCutRolloff(t *testing.T) {
	for slope := Slope12; slope <= Slope48; slope++ {
		s := DefaultSettings()
		s.LowCutFreq = 1000
		s.LowCutSlope = slope

		_, sampler := newSampledChain(t, s, testSampleRate)

		corner := sampler.MagnitudeDB([]float64{1000}, testSampleRate)[0]
		if math.Abs(corner-(-3.0103)) > 0.01 {
			t.Errorf("%v: corner=%.4f dB, want -3.01", slope, corner)
		}

		// Monotonically falling over the octave below the corner.
		freqs := spectrum.LogFrequencies(48, 500, 1000)
		testutil.RequireStrictlyIncreasing(t, sampler.MagnitudeDB(freqs, testSampleRate))

		pair := sampler.MagnitudeDB([]float64{500, 250}, testSampleRate)
		drop := pair[0] - pair[1]
		if want := float64(slope.DBPerOctave()); math.Abs(drop-want) > 0.5 {
			t.Errorf("%v: %.2f dB/oct below the corner, want about %v", slope, drop, want)
		}
	}
}

func TestSampler_HighCutRolloff(t *testing.T) {
	for slope := Slope12; slope <= Slope48; slope++ {
		s := DefaultSettings()
		s.HighCutFreq = 1000
		s.HighCutSlope = slope

		_, sampler := newSampledChain(t, s, testSampleRate)

		db := sampler.MagnitudeDB([]float64{1000, 2000, 4000}, testSampleRate)
		if math.Abs(db[0]-(-3.0103)) > 0.01 {
			t.Errorf("%v: corner=%.4f dB, want -3.01", slope, db[0])
		}

		// The bilinear transform steepens the slope towards Nyquist.
		drop := db[1] - db[2]
		if want := float64(slope.DBPerOctave()); drop < want-0.5 || drop > want+2 {
			t.Errorf("%v: %.2f dB/oct above the corner, want about %v", slope, drop, want)
		}
	}
}

func TestSampler_FloorsAtMinDB(t *testing.T) {
	s := DefaultSettings()
	s.LowCutFreq = 5000
	s.LowCutSlope = Slope48

	_, sampler := newSampledChain(t, s, testSampleRate)

	if got := sampler.MagnitudeDB([]float64{20}, testSampleRate)[0]; got != core.MinDB {
		t.Fatalf("deep stop band=%v dB, want %v", got, core.MinDB)
	}
}

func TestSampler_PassthroughChain(t *testing.T) {
	sampler := NewSampler(NewChain())

	for _, db := range sampler.MagnitudeDB([]float64{20, 1000, 20000}, testSampleRate) {
		if db != 0 {
			t.Fatalf("passthrough chain=%v dB, want 0", db)
		}
	}
}

func TestSampler_InvalidSampleRateIsFlat(t *testing.T) {
	_, sampler := newSampledChain(t, boostSettings(), testSampleRate)

	for _, sr := range []float64{0, -1, math.NaN()} {
		for _, db := range sampler.MagnitudeDB([]float64{20, 1000}, sr) {
			if db != 0 {
				t.Fatalf("sr=%v: %v dB, want 0", sr, db)
			}
		}
	}
}

func TestSampler_Curve(t *testing.T) {
	_, sampler := newSampledChain(t, boostSettings(), testSampleRate)

	freqs, db := sampler.Curve(256, testSampleRate)
	if len(freqs) != 256 || len(db) != 256 {
		t.Fatalf("lengths=%d/%d", len(freqs), len(db))
	}
	if freqs[0] != spectrum.MinDisplayHz || freqs[255] != spectrum.MaxDisplayHz {
		t.Fatalf("range=%v..%v", freqs[0], freqs[255])
	}

	testutil.RequireFinite(t, db)
}

func TestSampler_MagnitudeDBIntoZeroAlloc(t *testing.T) {
	_, sampler := newSampledChain(t, boostSettings(), testSampleRate)

	freqs := spectrum.LogFrequencies(512, spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
	dst := make([]float64, len(freqs))
	dst = sampler.MagnitudeDBInto(dst, freqs, testSampleRate)

	allocs := testing.AllocsPerRun(50, func() {
		dst = sampler.MagnitudeDBInto(dst, freqs, testSampleRate)
	})
	if allocs != 0 {
		t.Fatalf("MagnitudeDBInto allocated %.1f times per run", allocs)
	}
}

// Run with -race.
func TestSampler_ConcurrentWithUpdates(t *testing.T) {
	c, sampler := newSampledChain(t, DefaultSettings(), testSampleRate)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		s := boostSettings()
		for i := range 500 {
			s.LowCutSlope = SlopeFromIndex(i % 4)
			s.PeakGainDB = float64(i%48 - 24)
			_ = c.UpdateFromSettings(s, testSampleRate)
		}
	}()

	freqs := spectrum.LogFrequencies(128, spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
	dst := make([]float64, len(freqs))

	for range 200 {
		dst = sampler.MagnitudeDBInto(dst, freqs, testSampleRate)
		testutil.RequireFinite(t, dst)
	}

	wg.Wait()
}
