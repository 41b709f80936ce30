// Package sentence splits free-form text into sentences.
package sentence

import (
	"regexp"
	"strings"

	"github.com/alnah/go-textkit/internal/pattern"
	"github.com/alnah/go-textkit/internal/protect"
)

// boundary is a run of terminators followed by a run of Unicode whitespace,
// the same set strings.Fields splits on. The whole run belongs to the
// sentence it closes.
var boundary = regexp.MustCompile(`[.!?]+[\s\p{Z}\x{0085}\v]+`)

// Sentence is one segmented sentence with its 1-based position.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Segmenter splits text into sentences, protecting abbreviations so their
// internal dots are not mistaken for boundaries.
// It is immutable and safe for concurrent use.
type Segmenter struct {
	protector *protect.Protector
}

// New creates a Segmenter for the given abbreviation table.
func New(abbreviations pattern.Table) *Segmenter {
	return &Segmenter{protector: protect.New(abbreviations.Sources())}
}

// Segment returns the sentences of text in source order.
// Empty or whitespace-only input yields an empty (nil) slice. Text without
// terminators yields a single sentence equal to the trimmed input.
func (s *Segmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	masked := s.protector.Protect(text)

	var out []string
	prev := 0
	for _, loc := range boundary.FindAllStringIndex(masked.Text, -1) {
		out = appendFragment(out, masked, masked.Text[prev:loc[1]])
		prev = loc[1]
	}
	// Trailing text without a terminator is still a sentence.
	out = appendFragment(out, masked, masked.Text[prev:])
	return out
}

// Numbered is Segment with 1-based indexes attached.
func (s *Segmenter) Numbered(text string) []Sentence {
	parts := s.Segment(text)
	if len(parts) == 0 {
		return nil
	}
	out := make([]Sentence, len(parts))
	for i, p := range parts {
		out[i] = Sentence{Index: i + 1, Text: p}
	}
	return out
}

func appendFragment(out []string, masked protect.Masked, fragment string) []string {
	if strings.TrimSpace(fragment) == "" {
		return out
	}
	return append(out, strings.TrimSpace(masked.Restore(fragment)))
}
