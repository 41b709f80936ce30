package contraction

import "errors"

// ErrUnknownMode indicates an invalid transformation mode was specified.
var ErrUnknownMode = errors.New("unknown contraction mode")
