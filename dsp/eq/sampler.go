package eq

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

// Sampler evaluates the magnitude response of a [Chain] for display. It
// only reads published coefficients, so it may run while the chain is
// processing audio and being updated.
//
// A Sampler keeps scratch space and must not be used by more than one
// goroutine at a time.
type Sampler struct {
	chain *Chain
	stage []float64
}

// NewSampler returns a sampler reading from c.
func NewSampler(c *Chain) *Sampler {
	return &Sampler{chain: c}
}

// MagnitudeDB returns the chain's response in dB at each of freqs.
func (s *Sampler) MagnitudeDB(freqs []float64, sampleRate float64) []float64 {
	return s.MagnitudeDBInto(make([]float64, len(freqs)), freqs, sampleRate)
}

// MagnitudeDBInto is like MagnitudeDB but writes into dst, growing it only
// when its capacity is too small.
//
// The curve is 20*log10 of the product of |H(f)| over every active
// section, floored at [core.MinDB]. For an invalid sampleRate the chain is
// a passthrough and the curve is flat at 0 dB.
func (s *Sampler) MagnitudeDBInto(dst, freqs []float64, sampleRate float64) []float64 {
	if cap(dst) < len(freqs) {
		dst = make([]float64, len(freqs))
	}
	dst = dst[:len(freqs)]

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		core.Fill(dst, 0)
		return dst
	}

	snap := s.chain.Snapshot()
	s.stage = core.EnsureLen(s.stage, len(freqs))
	core.Fill(dst, 1)

	for i := 0; i < snap.LowCut.Active; i++ {
		s.accumulate(dst, &snap.LowCut.Sections[i], freqs, sampleRate)
	}

	if !snap.Peak.Bypassed {
		s.accumulate(dst, &snap.Peak.Coefficients, freqs, sampleRate)
	}

	for i := 0; i < snap.HighCut.Active; i++ {
		s.accumulate(dst, &snap.HighCut.Sections[i], freqs, sampleRate)
	}

	amplitudeToDB(dst)

	return dst
}

func (s *Sampler) accumulate(dst []float64, c *biquad.Coefficients, freqs []float64, sampleRate float64) {
	for i, f := range freqs {
		s.stage[i] = c.Magnitude(f, sampleRate)
	}

	vecmath.MulBlockInPlace(dst, s.stage)
}

// Curve samples the response at n log-spaced frequencies between
// [spectrum.MinDisplayHz] and [spectrum.MaxDisplayHz].
func (s *Sampler) Curve(n int, sampleRate float64) (freqs, db []float64) {
	freqs = spectrum.LogFrequencies(n, spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
	return freqs, s.MagnitudeDB(freqs, sampleRate)
}
