package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrInputTooLarge indicates the input exceeds the configured max-input size.
	ErrInputTooLarge = errors.New("input too large")

	// ErrNoInput indicates no file argument was given and stdin is a terminal.
	ErrNoInput = errors.New("no input")

	// ErrUnknownOperation indicates an invalid batch operation was specified.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrFlagConflict indicates flags that cannot be used together.
	ErrFlagConflict = errors.New("conflicting flags")

	// ErrInvalidFlag indicates a flag value outside its accepted range.
	ErrInvalidFlag = errors.New("invalid flag value")
)
