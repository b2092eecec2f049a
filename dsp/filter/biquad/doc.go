// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. It owns its delay line and
// is meant to be driven from one goroutine.
//
// [Stage] and [Bank] wrap sections for live use: their coefficients are
// published through a single atomic pointer so that a control goroutine can
// replace them while an audio goroutine keeps processing. The audio side
// never blocks, never allocates and always observes a complete coefficient
// set, at worst one update late.
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth, parametric EQ, etc.) lives in dsp/filter/design.
package biquad
