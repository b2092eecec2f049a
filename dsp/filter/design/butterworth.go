package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Kind selects the response of a cut filter.
type Kind int

const (
	// LowCut removes content below the corner frequency (high-pass).
	LowCut Kind = iota
	// HighCut removes content above the corner frequency (low-pass).
	HighCut
)

func (k Kind) String() string {
	switch k {
	case LowCut:
		return "lowcut"
	case HighCut:
		return "highcut"
	default:
		return "unknown"
	}
}

// ButterworthQ returns the quality factor of section k of an order-pole
// Butterworth filter built from order/2 second-order sections:
//
//	Q_k = 1 / (2*cos(pi*(2k+1)/(2*order)))
func ButterworthQ(order, k int) float64 {
	theta := math.Pi * float64(2*k+1) / (2 * float64(order))

	c := math.Cos(theta)
	if order <= 0 || c <= 0 {
		return defaultQ
	}

	return 1 / (2 * c)
}

// ButterworthLP designs an even-order lowpass Butterworth cascade of
// order/2 sections. Odd orders are rounded down.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(Lowpass, freq, order, sampleRate)
}

// ButterworthHP designs an even-order highpass Butterworth cascade of
// order/2 sections. Odd orders are rounded down.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(Highpass, freq, order, sampleRate)
}

func butterworth(proto func(freq, q, sampleRate float64) biquad.Coefficients,
	freq float64, order int, sampleRate float64,
) []biquad.Coefficients {
	n := order / 2
	if n <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, n)
	for k := range sections {
		sections[k] = proto(freq, ButterworthQ(2*n, k), sampleRate)
	}

	return sections
}

// CutFilter designs the sections for a cut filter with the given number of
// active stages (1..biquad.MaxStages, i.e. 12..48 dB/oct). Entries
// [0, stages) hold a Butterworth filter of order 2*stages; the remaining
// entries are [biquad.Identity].
//
// freq is clamped with [ClampFrequency]. Any section that would be
// non-finite or unstable is replaced by the identity, as is every section
// when sampleRate is not positive.
func CutFilter(kind Kind, freq float64, stages int, sampleRate float64) [biquad.MaxStages]biquad.Coefficients {
	var out [biquad.MaxStages]biquad.Coefficients
	for i := range out {
		out[i] = biquad.Identity
	}

	stages = min(max(stages, 0), biquad.MaxStages)
	if stages == 0 || !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return out
	}

	proto := Highpass
	if kind == HighCut {
		proto = Lowpass
	}

	freq = ClampFrequency(freq, sampleRate)
	order := 2 * stages

	for k := range stages {
		c := proto(freq, ButterworthQ(order, k), sampleRate)
		if c != (biquad.Coefficients{}) && c.IsStable() {
			out[k] = c
		}
	}

	return out
}
