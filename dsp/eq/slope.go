package eq

import "fmt"

// Slope is the steepness of a cut filter.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// SlopeFromIndex converts a choice index to a Slope, clamping out-of-range
// indices to the nearest slope.
func SlopeFromIndex(i int) Slope {
	return Slope(min(max(i, int(Slope12)), int(Slope48)))
}

// Stages returns the number of active biquad sections, 1 to 4.
func (s Slope) Stages() int {
	return int(SlopeFromIndex(int(s))) + 1
}

// DBPerOctave returns the nominal asymptotic attenuation rate.
func (s Slope) DBPerOctave() int {
	return 12 * s.Stages()
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/Oct", s.DBPerOctave())
}
