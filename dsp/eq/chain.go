package eq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// Chain is the per-channel filter topology: low cut, then peak, then high
// cut.
//
// UpdateFromSettings runs on the control goroutine; ProcessSample,
// ProcessBlock and Reset run on the audio goroutine. The only state they
// share is the published coefficients.
//
// The zero value is a passthrough chain.
type Chain struct {
	lowCut  biquad.Bank
	peak    biquad.Stage
	highCut biquad.Bank
}

// NewChain returns a passthrough chain.
func NewChain() *Chain {
	return &Chain{}
}

// LowCut returns the low-cut bank.
func (c *Chain) LowCut() *biquad.Bank { return &c.lowCut }

// Peak returns the peak stage.
func (c *Chain) Peak() *biquad.Stage { return &c.peak }

// HighCut returns the high-cut bank.
func (c *Chain) HighCut() *biquad.Bank { return &c.highCut }

// UpdateFromSettings designs coefficients for s at sampleRate and publishes
// them. Out-of-range settings are clamped. A section that comes out
// unstable is replaced by the identity.
//
// An invalid sampleRate leaves the published coefficients unchanged.
func (c *Chain) UpdateFromSettings(s ChainSettings, sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	s = s.Sanitize(sampleRate)

	peak := design.Peak(s.PeakFreq, s.PeakGainDB, s.PeakQ, sampleRate)
	if peak == (biquad.Coefficients{}) || !peak.IsStable() {
		peak = biquad.Identity
	}

	lowStages := s.LowCutSlope.Stages()
	low := design.CutFilter(design.LowCut, s.LowCutFreq, lowStages, sampleRate)

	highStages := s.HighCutSlope.Stages()
	high := design.CutFilter(design.HighCut, s.HighCutFreq, highStages, sampleRate)

	c.peak.SetCoefficients(peak)

	return errors.Join(
		c.lowCut.Configure(lowStages, low[:]),
		c.highCut.Configure(highStages, high[:]),
	)
}

// ProcessSample filters one sample through the chain.
func (c *Chain) ProcessSample(x float64) float64 {
	x = c.lowCut.ProcessSample(x)
	x = c.peak.ProcessSample(x)

	return c.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in-place. It does not allocate.
func (c *Chain) ProcessBlock(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	c.peak.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// Reset clears every delay line. Call it from the audio goroutine or while
// processing is stopped.
func (c *Chain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// Snapshot reads the published coefficients of every filter. Each filter is
// read atomically; a concurrent update may land between the reads.
func (c *Chain) Snapshot() Snapshot {
	return Snapshot{
		LowCut:  c.lowCut.Snapshot(),
		Peak:    c.peak.Snapshot(),
		HighCut: c.highCut.Snapshot(),
	}
}

// Snapshot is a copy of a chain's published coefficients.
type Snapshot struct {
	LowCut  biquad.BankPatch
	Peak    biquad.Patch
	HighCut biquad.BankPatch
}

// Magnitude returns the linear magnitude response of the whole chain at
// freqHz: the product over every active section.
func (s *Snapshot) Magnitude(freqHz, sampleRate float64) float64 {
	return s.LowCut.Magnitude(freqHz, sampleRate) *
		s.Peak.Magnitude(freqHz, sampleRate) *
		s.HighCut.Magnitude(freqHz, sampleRate)
}
