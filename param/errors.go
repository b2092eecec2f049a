package param

import "errors"

var (
	// ErrUnknownParameter is returned for an ID the store does not hold.
	ErrUnknownParameter = errors.New("param: unknown parameter")
	// ErrDuplicateParameter is returned when two parameters share an ID.
	ErrDuplicateParameter = errors.New("param: duplicate parameter id")
	// ErrInvalidValue is returned for values that cannot be parsed or are NaN.
	ErrInvalidValue = errors.New("param: invalid value")
)
