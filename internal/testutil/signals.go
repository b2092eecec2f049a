package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude,
// amplitude) from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos. An out-of-range pos gives
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave packs two channels into an interleaved float32 stereo buffer
// of 2*min(len(left), len(right)) samples, the layout audio hosts deliver.
func Interleave(left, right []float64) []float32 {
	n := min(len(left), len(right))
	out := make([]float32, 2*n)
	for i := range n {
		out[2*i] = float32(left[i])
		out[2*i+1] = float32(right[i])
	}
	return out
}

// Deinterleave splits an interleaved stereo buffer into two channels. A
// trailing odd sample is dropped.
func Deinterleave(buf []float32) (left, right []float64) {
	n := len(buf) / 2
	left = make([]float64, n)
	right = make([]float64, n)
	for i := range n {
		left[i] = float64(buf[2*i])
		right[i] = float64(buf[2*i+1])
	}
	return left, right
}
