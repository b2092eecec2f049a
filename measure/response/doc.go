// Package response measures the magnitude response of an equalizer chain
// by running an impulse through it and transforming the result.
//
// The measurement goes through the same filter code as live audio, so it
// checks the processing path against the analytic curve from
// [eq.Sampler]:
//
//	m, _ := response.Measure(settings, 48000, 16384)
//	db, _ := m.At([]float64{100, 1000, 10000})
package response
