package terrain

import "errors"

var (
	// ErrInvalidDimensions is returned when a field would be narrower or
	// shorter than two cells.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidParameters is returned for a malformed decay factor, a
	// negative or non-finite randomness magnitude, or a bad output range.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrIndexOutOfBounds is returned by the checked HeightField accessors.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)
