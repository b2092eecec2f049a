package core

import "math"

// MinDB is the floor used when converting silence or an unusable magnitude
// to decibels.
const MinDB = -100.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// AmplitudeToDB converts a linear magnitude to dB (20*log10 convention).
// Zero, negative and NaN magnitudes map to [MinDB]; results are never
// below it.
func AmplitudeToDB(m float64) float64 {
	if !(m > 0) {
		return MinDB
	}

	return math.Max(20*math.Log10(m), MinDB)
}
