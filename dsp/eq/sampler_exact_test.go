//go:build !fastmath

package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

func TestSampler_MatchesSnapshotMagnitude(t *testing.T) {
	c, sampler := newSampledChain(t, boostSettings(), testSampleRate)
	snap := c.Snapshot()

	freqs := spectrum.LogFrequencies(100, 30, 18000)
	got := sampler.MagnitudeDB(freqs, testSampleRate)

	for i, f := range freqs {
		want := 20 * math.Log10(snap.Magnitude(f, testSampleRate))
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("%.1f Hz: got %v, want %v", f, got[i], want)
		}
	}
}
