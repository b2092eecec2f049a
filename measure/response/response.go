package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

// Supported measurement lengths.
const (
	MinLength = 256
	MaxLength = 1 << 20
)

// ErrInvalidLength is returned for lengths that are not a power of two in
// [MinLength, MaxLength].
var ErrInvalidLength = errors.New("response: length must be a power of two in [256, 1048576]")

// Measurement is a measured magnitude response sampled at FFT bin centres
// from 0 Hz to Nyquist.
type Measurement struct {
	SampleRate float64
	Freqs      []float64
	DB         []float64
	// Impulse is the chain's impulse response the spectrum was taken from.
	Impulse []float64
}

// Measure designs a fresh chain for s at sampleRate, feeds it a unit
// impulse of length n and returns the magnitude spectrum of the output.
// n bounds the frequency resolution at sampleRate/n and must be long
// enough for the impulse response to decay.
func Measure(s eq.ChainSettings, sampleRate float64, n int) (*Measurement, error) {
	if n < MinLength || n > MaxLength || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	chain := eq.NewChain()
	if err := chain.UpdateFromSettings(s, sampleRate); err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	ir := make([]float64, n)
	ir[0] = 1
	chain.ProcessBlock(ir)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k], im[k] = real(out[k]), imag(out[k])
	}

	m := &Measurement{
		SampleRate: sampleRate,
		Freqs:      make([]float64, bins),
		DB:         make([]float64, bins),
		Impulse:    ir,
	}

	spectrum.MagnitudeFromParts(m.DB, re, im)

	for k := range m.DB {
		m.Freqs[k] = float64(k) * sampleRate / float64(n)
		m.DB[k] = core.AmplitudeToDB(m.DB[k])
	}

	return m, nil
}

// At interpolates the measured response at freqs, linearly between bins.
func (m *Measurement) At(freqs []float64) ([]float64, error) {
	return spectrum.InterpolateLinear(m.Freqs, m.DB, freqs)
}

// Tail returns the peak absolute value of the last eighth of the impulse
// response in dB. A high tail means n was too short for the filters to
// decay and the spectrum is smeared.
func (m *Measurement) Tail() float64 {
	tail := m.Impulse[len(m.Impulse)-len(m.Impulse)/8:]

	peak := 0.0
	for _, v := range tail {
		peak = math.Max(peak, math.Abs(v))
	}

	return core.AmplitudeToDB(peak)
}
