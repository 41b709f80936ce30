package pattern

import "errors"

// ErrInvalidTable indicates a pattern table file could not be used.
var ErrInvalidTable = errors.New("invalid pattern table")
