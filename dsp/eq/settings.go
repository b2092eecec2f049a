package eq

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/param"
)

// ChainSettings is a snapshot of the user-facing equalizer parameters.
type ChainSettings struct {
	PeakFreq   float64 // Hz
	PeakGainDB float64
	PeakQ      float64

	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	LowCutSlope  Slope
	HighCutSlope Slope
}

// DefaultSettings returns the parameter defaults: a flat 750 Hz peak and
// both cut filters open at 12 dB/oct.
func DefaultSettings() ChainSettings {
	return ChainSettings{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQ:        1,
		LowCutFreq:   20,
		HighCutFreq:  20000,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// ValueSource reads a plain parameter value by ID. [param.Store] satisfies
// it.
type ValueSource interface {
	Value(id string) float64
}

// SettingsFrom reads a ChainSettings snapshot from src using the parameter
// IDs of [param.EQLayout]. Missing values come back as NaN from the store
// and are repaired by [ChainSettings.Sanitize] at design time.
func SettingsFrom(src ValueSource) ChainSettings {
	return ChainSettings{
		PeakFreq:     src.Value(param.PeakFreq),
		PeakGainDB:   src.Value(param.PeakGain),
		PeakQ:        src.Value(param.PeakQuality),
		LowCutFreq:   src.Value(param.LowCutFreq),
		HighCutFreq:  src.Value(param.HighCutFreq),
		LowCutSlope:  slopeFromValue(src.Value(param.LowCutSlope)),
		HighCutSlope: slopeFromValue(src.Value(param.HighCutSlope)),
	}
}

func slopeFromValue(v float64) Slope {
	if math.IsNaN(v) {
		return Slope12
	}

	return Slope(math.Round(core.Clamp(v, float64(Slope12), float64(Slope48))))
}

// Sanitize returns s with every value clamped to what the filter designs
// accept at sampleRate.
func (s ChainSettings) Sanitize(sampleRate float64) ChainSettings {
	s.PeakFreq = design.ClampFrequency(s.PeakFreq, sampleRate)
	s.PeakGainDB = design.ClampGainDB(s.PeakGainDB)
	s.PeakQ = design.ClampQ(s.PeakQ)
	s.LowCutFreq = design.ClampFrequency(s.LowCutFreq, sampleRate)
	s.HighCutFreq = design.ClampFrequency(s.HighCutFreq, sampleRate)
	s.LowCutSlope = SlopeFromIndex(int(s.LowCutSlope))
	s.HighCutSlope = SlopeFromIndex(int(s.HighCutSlope))

	return s
}
