// Package eq implements a stereo three-band parametric equalizer: a
// low-cut filter, a peak (bell) filter and a high-cut filter applied in
// that order to each channel.
//
// Coefficients are designed on a control goroutine and published to the
// audio goroutine through atomic pointer swaps (see [biquad.Stage] and
// [biquad.Bank]), so [Chain.ProcessBlock] never locks or allocates.
// [Controller] runs the control side: it watches a parameter store,
// recomputes coefficients at a fixed refresh rate when something changed,
// and optionally reports the new magnitude response for display.
package eq
