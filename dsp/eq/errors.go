package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned when coefficients are requested for a
	// non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("eq: sample rate must be finite and > 0")
	// ErrInvalidBlockSize is returned by Prepare for a non-positive block size.
	ErrInvalidBlockSize = errors.New("eq: block size must be > 0")
	// ErrNilSource is returned by NewController without a parameter source
	// or processor.
	ErrNilSource = errors.New("eq: controller needs a parameter source and a processor")
)
