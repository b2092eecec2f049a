package window

import "errors"

var (
	// ErrUnknownType is returned by ParseType for unrecognized names.
	ErrUnknownType = errors.New("window: unknown window type")
	// ErrEmptyCoeffs is returned when no coefficients are supplied.
	ErrEmptyCoeffs = errors.New("window: coefficients must not be empty")
	// ErrZeroCoherentGain is returned when coefficients sum to zero.
	ErrZeroCoherentGain = errors.New("window: coherent gain is zero")
	// ErrMismatchedLength is returned when buffers differ in length.
	ErrMismatchedLength = errors.New("window: samples and coefficients must have same length")
)
