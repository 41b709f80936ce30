package caption

import "fmt"

// DefaultWPM is the speaking rate used when none is configured.
const DefaultWPM = 150

// Rate is a validated speaking rate in words per minute.
// Zero value means "not set"; the synthesizer falls back to DefaultRate.
// Create with Bounds.Parse (reject) or Bounds.Clamp (clamp).
type Rate struct {
	wpm int
}

// DefaultRate is DefaultWPM as a Rate.
var DefaultRate = Rate{wpm: DefaultWPM}

// WPM returns the rate in words per minute.
func (r Rate) WPM() int {
	return r.wpm
}

// IsZero reports whether no rate was set.
func (r Rate) IsZero() bool {
	return r.wpm == 0
}

// OrDefault returns the rate, or DefaultRate if zero.
func (r Rate) OrDefault() Rate {
	if r.IsZero() {
		return DefaultRate
	}
	return r
}

// String returns e.g. "150 wpm".
func (r Rate) String() string {
	return fmt.Sprintf("%d wpm", r.wpm)
}

// Bounds is the accepted speaking-rate range, inclusive.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds is the range accepted by the CLI and the HTTP API.
var DefaultBounds = Bounds{Min: 100, Max: 200}

// Validate checks that the range itself is usable.
func (b Bounds) Validate() error {
	if b.Min < 1 || b.Max < b.Min {
		return fmt.Errorf("invalid rate bounds [%d, %d]: %w", b.Min, b.Max, ErrRateOutOfRange)
	}
	return nil
}

// Contains reports whether wpm lies within the range.
func (b Bounds) Contains(wpm int) bool {
	return wpm >= b.Min && wpm <= b.Max
}

// Parse validates wpm against the range.
// Returns ErrRateOutOfRange if it falls outside.
func (b Bounds) Parse(wpm int) (Rate, error) {
	if !b.Contains(wpm) {
		return Rate{}, fmt.Errorf("speaking rate %d wpm outside [%d, %d]: %w", wpm, b.Min, b.Max, ErrRateOutOfRange)
	}
	return Rate{wpm: wpm}, nil
}

// Clamp constrains wpm to the range.
func (b Bounds) Clamp(wpm int) Rate {
	return Rate{wpm: max(b.Min, min(wpm, b.Max))}
}

// ParseRate validates wpm against DefaultBounds.
func ParseRate(wpm int) (Rate, error) {
	return DefaultBounds.Parse(wpm)
}

// MustParseRate parses a rate, panicking if invalid.
// Use only for constants and tests.
func MustParseRate(wpm int) Rate {
	r, err := ParseRate(wpm)
	if err != nil {
		panic(err)
	}
	return r
}
