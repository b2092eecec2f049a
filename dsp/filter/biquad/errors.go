package biquad

import "errors"

var (
	// ErrInvalidOrder is returned when a bank is configured with an active
	// stage count outside [0, MaxStages].
	ErrInvalidOrder = errors.New("biquad: active stage count out of range")

	// ErrOrderMismatch is returned when fewer coefficient sets are supplied
	// than the requested number of active stages.
	ErrOrderMismatch = errors.New("biquad: fewer coefficient sets than active stages")
)
