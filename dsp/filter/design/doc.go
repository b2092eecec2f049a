// Package design provides the biquad coefficient designers used by the
// equalizer.
//
// The functions in this package are pure: given a frequency, gain, quality
// factor and sample rate they return coefficients consumable by
// dsp/filter/biquad. [Peak] follows the RBJ cookbook peaking EQ. [CutFilter]
// returns the cascaded second-order sections of a Butterworth high-pass or
// low-pass filter sized for a [biquad.Bank].
package design
