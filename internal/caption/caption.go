// Package caption turns plain text into timed captions from a speaking rate.
//
// Timing is a pure function of word index and rate: there is no audio, so a
// caption starting at word i lasts exactly as long as its words take to say.
package caption

import (
	"math"
	"slices"
	"strings"
)

// DefaultWindow is the target caption duration in seconds.
const DefaultWindow = 3.0

// Caption is one timed block of consecutive words.
type Caption struct {
	Words []string `json:"-"`
	Text  string   `json:"text"`
	Start float64  `json:"startSeconds"`
	End   float64  `json:"endSeconds"`
}

// Synthesizer partitions words into fixed-size, time-stamped captions.
// It is immutable and safe for concurrent use.
type Synthesizer struct {
	window float64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithWindow sets the target caption duration in seconds.
// Non-positive values are ignored.
func WithWindow(seconds float64) Option {
	return func(s *Synthesizer) {
		if seconds > 0 {
			s.window = seconds
		}
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{window: DefaultWindow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the target caption duration in seconds.
func (s *Synthesizer) Window() float64 {
	return s.window
}

// WordsPerCaption returns ceil(rate/60 * window), at least 1.
func (s *Synthesizer) WordsPerCaption(rate Rate) int {
	wpm := float64(rate.OrDefault().WPM())
	// Multiply before dividing: 100*3/60 is exactly 5, 100/60*3 is not.
	return max(1, int(math.Ceil(wpm*s.window/60)))
}

// Synthesize splits text on whitespace and groups the words into captions.
//
// For a chunk starting at word i with k words:
//
//	start = i/rate*60, end = (i+k)/rate*60
//
// both rounded to one decimal. Before rounding, consecutive captions abut
// exactly; rounding may leave a gap or overlap below 0.1s, which is accepted.
// Empty input yields nil. Rate bounds are not checked here.
func (s *Synthesizer) Synthesize(text string, rate Rate) []Caption {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	wpm := float64(rate.OrDefault().WPM())
	per := s.WordsPerCaption(rate)

	caps := make([]Caption, 0, (len(words)+per-1)/per)
	for i := 0; i < len(words); i += per {
		k := min(per, len(words)-i)
		chunk := slices.Clone(words[i : i+k])
		caps = append(caps, Caption{
			Words: chunk,
			Text:  strings.Join(chunk, " "),
			Start: round1(float64(i) * 60 / wpm),
			End:   round1(float64(i+k) * 60 / wpm),
		})
	}
	return caps
}

// Duration returns End - Start.
func (c Caption) Duration() float64 {
	return c.End - c.Start
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
