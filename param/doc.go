// Package param holds the user-facing equalizer parameters.
//
// A [Store] owns a fixed set of [Parameter] values. Values are plain
// (Hz, dB, Q, choice index), stored as atomic float64 bits so any goroutine
// may read them without locking. Writers go through the store, which clamps
// and quantizes the value and notifies listeners registered with
// [Store.Listen].
package param
