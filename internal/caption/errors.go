package caption

import "errors"

var (
	// ErrRateOutOfRange indicates a speaking rate outside the configured bounds.
	ErrRateOutOfRange = errors.New("speaking rate out of range")

	// ErrUnknownFormat indicates an invalid caption output format was specified.
	ErrUnknownFormat = errors.New("unknown caption format")
)
