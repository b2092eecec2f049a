//go:build !fastmath

package eq

import "github.com/cwbudde/algo-eq/dsp/core"

// amplitudeToDB converts linear magnitudes to dB in place.
func amplitudeToDB(buf []float64) {
	for i, m := range buf {
		buf[i] = core.AmplitudeToDB(m)
	}
}
