package caption

import (
	"fmt"
	"strings"
)

// Format name constants.
const (
	SRT  = "srt"
	VTT  = "vtt"
	JSON = "json"
	Text = "text"
)

// Format is a validated caption output format.
// Zero value means "not set"; Write falls back to SRTFormat.
type Format struct {
	name string
}

// Pre-parsed formats.
var (
	SRTFormat  = Format{name: SRT}
	VTTFormat  = Format{name: VTT}
	JSONFormat = Format{name: JSON}
	TextFormat = Format{name: Text}
)

var formatOrder = []string{SRT, VTT, JSON, Text}

// ParseFormat validates a format name. Matching is case-insensitive.
// Returns ErrUnknownFormat for empty or unrecognized names.
func ParseFormat(s string) (Format, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return Format{}, fmt.Errorf("caption format cannot be empty: %w", ErrUnknownFormat)
	}
	for _, name := range formatOrder {
		if norm == name {
			return Format{name: name}, nil
		}
	}
	return Format{}, fmt.Errorf("unknown caption format %q (expected one of %s): %w",
		s, strings.Join(formatOrder, ", "), ErrUnknownFormat)
}

// MustParseFormat parses a format, panicking if invalid.
// Use only for constants and tests.
func MustParseFormat(s string) Format {
	f, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the format name.
func (f Format) String() string {
	return f.name
}

// IsZero reports whether no format was set.
func (f Format) IsZero() bool {
	return f.name == ""
}

// OrDefault returns the format, or SRTFormat if zero.
func (f Format) OrDefault() Format {
	if f.IsZero() {
		return SRTFormat
	}
	return f
}

// Ext returns the file extension for the format, with a leading dot.
func (f Format) Ext() string {
	if f.OrDefault().name == Text {
		return ".txt"
	}
	return "." + f.OrDefault().name
}

// FormatNames returns all format names in display order.
func FormatNames() []string {
	out := make([]string, len(formatOrder))
	copy(out, formatOrder)
	return out
}
