package spectrum

import "math"

// Display range of the response curve.
const (
	MinDisplayHz = 20.0
	MaxDisplayHz = 20000.0
)

// MapToLog10 maps a normalized position p in [0, 1] onto [lo, hi] on a
// logarithmic axis: lo*(hi/lo)^p.
func MapToLog10(p, lo, hi float64) float64 {
	return lo * math.Pow(hi/lo, p)
}

// MapFromLog10 is the inverse of [MapToLog10].
func MapFromLog10(f, lo, hi float64) float64 {
	return math.Log10(f/lo) / math.Log10(hi/lo)
}

// LogFrequencies returns n frequencies log-spaced over [lo, hi], both ends
// included. Sample i sits at MapToLog10(i/(n-1), lo, hi).
func LogFrequencies(n int, lo, hi float64) []float64 {
	return LogFrequenciesInto(make([]float64, n), lo, hi)
}

// LogFrequenciesInto fills dst with len(dst) log-spaced frequencies and
// returns it.
func LogFrequenciesInto(dst []float64, lo, hi float64) []float64 {
	switch len(dst) {
	case 0:
		return dst
	case 1:
		dst[0] = lo
		return dst
	}

	last := float64(len(dst) - 1)
	for i := range dst {
		dst[i] = MapToLog10(float64(i)/last, lo, hi)
	}
	dst[len(dst)-1] = hi

	return dst
}
