package param

// Parameter IDs of the equalizer layout.
const (
	LowCutFreq   = "LowCut Freq"
	HighCutFreq  = "HighCut Freq"
	PeakFreq     = "Peak Freq"
	PeakGain     = "Peak Gain"
	PeakQuality  = "Peak Quality"
	LowCutSlope  = "LowCut Slope"
	HighCutSlope = "HighCut Slope"
)

// freqSkew gives the low end of the frequency range most of the control
// travel.
const freqSkew = 0.25

// SlopeChoices are the display names of the cut filter slopes, in index
// order.
var SlopeChoices = []string{"12 dB/Oct", "24 dB/Oct", "36 dB/Oct", "48 dB/Oct"}

// EQLayout returns fresh parameters for the three-band equalizer: a
// low cut, a peak and a high cut.
func EQLayout() []*Parameter {
	return []*Parameter{
		NewFloat(LowCutFreq, "Hz", 20, 20000, 1, freqSkew, 20),
		NewFloat(HighCutFreq, "Hz", 20, 20000, 1, freqSkew, 20000),
		NewFloat(PeakFreq, "Hz", 20, 20000, 1, freqSkew, 750),
		NewFloat(PeakGain, "dB", -24, 24, 0.5, 1, 0),
		NewFloat(PeakQuality, "", 0.1, 10, 0.05, 1, 1),
		NewChoice(LowCutSlope, SlopeChoices, 0),
		NewChoice(HighCutSlope, SlopeChoices, 0),
	}
}

// NewEQStore returns a store holding [EQLayout] at default values.
func NewEQStore() *Store {
	s, err := NewStore(EQLayout()...)
	if err != nil {
		panic(err)
	}

	return s
}
