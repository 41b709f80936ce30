// Package contraction expands and compresses English contractions.
//
// Both directions are folds over an ordered pattern table: each step rewrites
// the output of the previous one, so table order is the tie-break rule.
// Matching is whole-word and case-insensitive; the replacement always uses the
// table's canonical spelling, so "Can't" expands to "cannot".
package contraction

import (
	"github.com/alnah/go-textkit/internal/pattern"
)

// rule is one compiled fold step.
type rule struct {
	matcher *pattern.Matcher
	repl    string
}

// Transformer rewrites contractions in either direction.
// It holds only compiled, read-only rules and is safe for concurrent use.
type Transformer struct {
	expand   []rule
	compress []rule
}

// New compiles a Transformer for the given contraction table.
// The compress rules come from the table's first-occurrence reverse mapping.
func New(table pattern.Table) *Transformer {
	t := &Transformer{}
	for _, e := range table.Entries() {
		t.expand = append(t.expand, rule{matcher: pattern.Compile(e.Source, e.Kind), repl: e.Target})
	}
	for _, e := range table.Reverse() {
		t.compress = append(t.compress, rule{matcher: pattern.Compile(e.Source, e.Kind), repl: e.Target})
	}
	return t
}

// Expand replaces contractions with their expansions.
func (t *Transformer) Expand(text string) string {
	return fold(text, t.expand)
}

// Compress replaces expansions with their canonical contraction.
// It is not an exact inverse of Expand: contractions sharing an expansion
// come back as the first one in the table.
func (t *Transformer) Compress(text string) string {
	return fold(text, t.compress)
}

// Transform applies the given mode. A zero Mode expands.
func (t *Transformer) Transform(text string, mode Mode) string {
	if mode == Compress {
		return t.Compress(text)
	}
	return t.Expand(text)
}

func fold(text string, rules []rule) string {
	out := text
	for _, r := range rules {
		out = r.matcher.ReplaceAll(out, r.repl)
	}
	return out
}
