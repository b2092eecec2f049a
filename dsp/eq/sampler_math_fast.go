//go:build fastmath

package eq

import (
	"math"

	"github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// dbPerNeper converts a natural log of amplitude to dB: 20/ln(10).
const dbPerNeper = 8.685889638065036553

// amplitudeToDB converts linear magnitudes to dB in place using a fast
// logarithm approximation.
func amplitudeToDB(buf []float64) {
	for i, m := range buf {
		if !(m > 0) {
			buf[i] = core.MinDB
			continue
		}

		buf[i] = math.Max(dbPerNeper*approx.FastLog(m), core.MinDB)
	}
}
