// Package engine bundles the three text operations behind one value built
// from explicit pattern tables.
package engine

import (
	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/pattern"
	"github.com/alnah/go-textkit/internal/sentence"
)

// Engine segments sentences, rewrites contractions and synthesizes captions.
// All state is built once in New and never mutated, so an Engine is safe for
// concurrent use.
type Engine struct {
	set         pattern.Set
	segmenter   *sentence.Segmenter
	transformer *contraction.Transformer
	synth       *caption.Synthesizer
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	captionOpts []caption.Option
}

// WithCaptionWindow sets the target caption duration in seconds.
func WithCaptionWindow(seconds float64) Option {
	return func(o *options) {
		o.captionOpts = append(o.captionOpts, caption.WithWindow(seconds))
	}
}

// New creates an Engine from the given tables.
// Zero tables in set are replaced by the built-in ones.
func New(set pattern.Set, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if set.Abbreviations.IsZero() {
		set.Abbreviations = pattern.Abbreviations()
	}
	if set.Contractions.IsZero() {
		set.Contractions = pattern.Contractions()
	}

	return &Engine{
		set:         set,
		segmenter:   sentence.New(set.Abbreviations),
		transformer: contraction.New(set.Contractions),
		synth:       caption.New(o.captionOpts...),
	}
}

// Default returns an Engine over the built-in tables.
func Default() *Engine {
	return New(pattern.DefaultSet())
}

// Tables returns the pattern tables the engine was built from.
func (e *Engine) Tables() pattern.Set {
	return e.set
}

// SegmentSentences splits text into trimmed, non-empty sentences.
func (e *Engine) SegmentSentences(text string) []string {
	return e.segmenter.Segment(text)
}

// NumberedSentences is SegmentSentences with 1-based indexes.
func (e *Engine) NumberedSentences(text string) []sentence.Sentence {
	return e.segmenter.Numbered(text)
}

// TransformContractions expands or compresses contractions.
func (e *Engine) TransformContractions(text string, mode contraction.Mode) string {
	return e.transformer.Transform(text, mode)
}

// SynthesizeCaptions groups words into captions timed at the given rate.
// The rate is not bounds-checked; callers validate at the boundary.
func (e *Engine) SynthesizeCaptions(text string, rate caption.Rate) []caption.Caption {
	return e.synth.Synthesize(text, rate)
}
