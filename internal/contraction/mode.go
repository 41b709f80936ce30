package contraction

import (
	"fmt"
	"strings"
)

// Mode names.
const (
	ExpandName   = "expand"
	CompressName = "compress"
)

// ---------------------------------------------------------------------------
// Mode type - represents a validated transformation direction
// ---------------------------------------------------------------------------

// Mode represents a validated transformation direction.
// Zero value is invalid; Transform treats it as Expand.
// Use ParseMode to create from user input, or the pre-parsed values.
type Mode struct {
	name string
}

// Pre-parsed modes.
var (
	Expand   = Mode{name: ExpandName}
	Compress = Mode{name: CompressName}
)

// ParseMode validates and parses a mode string (case-insensitive).
// Returns ErrUnknownMode if the name is not recognized.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ExpandName:
		return Expand, nil
	case CompressName:
		return Compress, nil
	case "":
		return Mode{}, fmt.Errorf("mode cannot be empty (use %q or %q): %w", ExpandName, CompressName, ErrUnknownMode)
	default:
		return Mode{}, fmt.Errorf("unknown mode %q (use %q or %q): %w", s, ExpandName, CompressName, ErrUnknownMode)
	}
}

// MustParseMode parses a mode, panicking if invalid.
// Use only for constants and tests.
func MustParseMode(s string) Mode {
	m, err := ParseMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the mode name. Returns empty string for zero value.
func (m Mode) String() string {
	return m.name
}

// IsZero reports whether no mode was set.
func (m Mode) IsZero() bool {
	return m.name == ""
}

// Names returns the valid mode names in canonical order.
func Names() []string {
	return []string{ExpandName, CompressName}
}
