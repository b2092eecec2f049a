package design

import "math"

// Parameter limits applied before design. Out-of-range values are clamped,
// never reported, so a bad control value cannot stop audio.
const (
	MinFrequency = 1.0
	// NyquistFraction bounds frequencies to this fraction of the sample rate.
	NyquistFraction = 0.49

	MinQ = 0.1
	MaxQ = 10.0

	MinGainDB = -24.0
	MaxGainDB = 24.0
)

// ClampFrequency limits freq to [MinFrequency, NyquistFraction*sampleRate].
// NaN maps to MinFrequency.
func ClampFrequency(freq, sampleRate float64) float64 {
	hi := NyquistFraction * sampleRate
	if hi < MinFrequency {
		hi = MinFrequency
	}

	return clamp(freq, MinFrequency, hi)
}

// ClampQ limits q to [MinQ, MaxQ]. NaN maps to MinQ.
func ClampQ(q float64) float64 {
	return clamp(q, MinQ, MaxQ)
}

// ClampGainDB limits gain to [MinGainDB, MaxGainDB]. NaN maps to 0 dB.
func ClampGainDB(gainDB float64) float64 {
	if math.IsNaN(gainDB) {
		return 0
	}

	return clamp(gainDB, MinGainDB, MaxGainDB)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
