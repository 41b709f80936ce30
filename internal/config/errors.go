package config

import "errors"

// ErrInvalidValue indicates a config value that cannot be used for its key.
var ErrInvalidValue = errors.New("invalid config value")

// ErrUnknownKey indicates a key that is not one of the supported config keys.
var ErrUnknownKey = errors.New("unknown config key")
