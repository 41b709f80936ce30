// Package protect hides literal tokens from pattern-based text processing.
//
// Protect swaps every whole-word, case-insensitive occurrence of a token for
// a placeholder built from a private-use marker rune and the token index.
// The marker is picked per call so that it never occurs in the input, which
// rules out collisions with user text. Placeholders contain neither
// whitespace nor sentence terminators.
package protect

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/alnah/go-textkit/internal/pattern"
)

// Private-use ranges scanned for a marker rune absent from the input.
var markerRanges = [][2]rune{
	{0xE000, 0xF8FF},
	{0xF0000, 0xFFFFD},
	{0x100000, 0x10FFFD},
}

// Protector masks a fixed, ordered list of tokens.
// It holds only compiled, read-only state and is safe for concurrent use.
type Protector struct {
	tokens   []string
	matchers []*pattern.Matcher
}

// New compiles a Protector for tokens. Tokens are masked in slice order.
func New(tokens []string) *Protector {
	p := &Protector{
		tokens:   make([]string, len(tokens)),
		matchers: make([]*pattern.Matcher, len(tokens)),
	}
	copy(p.tokens, tokens)
	for i, tok := range tokens {
		p.matchers[i] = pattern.Compile(tok, pattern.Word)
	}
	return p
}

// Masked is the result of Protect.
type Masked struct {
	// Text is the input with protected tokens replaced by placeholders.
	Text string

	tokens []string
	marker rune
	re     *regexp.Regexp
}

// Protect masks every occurrence of every token in text.
//
// All tokens are matched against the original text in one pass, so a token
// can never match inside another token's placeholder. When occurrences of
// two tokens overlap, the token listed first wins.
func (p *Protector) Protect(text string) Masked {
	marker := pickMarker(text)
	m := Masked{
		tokens: p.tokens,
		marker: marker,
	}
	if marker == 0 {
		// Every private-use rune occurs in the input: leave it unmasked.
		m.Text = text
		return m
	}

	type hit struct {
		start, end, token int
	}
	var hits []hit
	claimed := make([]bool, len(text))
	for i, matcher := range p.matchers {
		for _, loc := range matcher.FindAll(text) {
			if overlaps(claimed, loc[0], loc[1]) {
				continue
			}
			for j := loc[0]; j < loc[1]; j++ {
				claimed[j] = true
			}
			hits = append(hits, hit{start: loc[0], end: loc[1], token: i})
		}
	}
	if len(hits) == 0 {
		m.Text = text
		m.re = placeholderRe(marker)
		return m
	}
	slices.SortFunc(hits, func(a, b hit) int { return a.start - b.start })

	mk := string(marker)
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, h := range hits {
		b.WriteString(text[prev:h.start])
		b.WriteString(mk + strconv.Itoa(h.token) + mk)
		prev = h.end
	}
	b.WriteString(text[prev:])
	m.Text = b.String()
	m.re = placeholderRe(marker)
	return m
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func placeholderRe(marker rune) *regexp.Regexp {
	mk := regexp.QuoteMeta(string(marker))
	return regexp.MustCompile(mk + `([0-9]+)` + mk)
}

// Restore replaces every placeholder in s with the canonical spelling of its
// token. s may be the whole masked text or any fragment of it. The original
// casing of a protected occurrence is not preserved.
func (m Masked) Restore(s string) string {
	if m.re == nil || !strings.ContainsRune(s, m.marker) {
		return s
	}
	return m.re.ReplaceAllStringFunc(s, func(ph string) string {
		sub := m.re.FindStringSubmatch(ph)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(m.tokens) {
			return ph
		}
		return m.tokens[idx]
	})
}

// pickMarker returns the first private-use rune that does not occur in text,
// or 0 if none is available.
func pickMarker(text string) rune {
	present := make(map[rune]bool)
	for _, r := range text {
		if isPrivateUse(r) {
			present[r] = true
		}
	}
	for _, rg := range markerRanges {
		for r := rg[0]; r <= rg[1]; r++ {
			if !present[r] {
				return r
			}
		}
	}
	return 0
}

func isPrivateUse(r rune) bool {
	for _, rg := range markerRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}
