package pattern

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher finds whole-word, case-insensitive occurrences of one literal form.
//
// An occurrence is accepted when the rune before it and the rune after it are
// not letters or digits (or are string edges). Like regexp \b, the check only
// applies to an edge of the form that is itself a letter or digit: "Dr." is
// bounded on the left only, and a Suffix form is never bounded on the left.
// ASCII and typographic apostrophes are interchangeable.
type Matcher struct {
	form         string
	re           *regexp.Regexp
	leftBounded  bool
	rightBounded bool
}

// Compile builds a Matcher for form. An empty form never matches.
func Compile(form string, kind Kind) *Matcher {
	m := &Matcher{form: form}
	if form == "" {
		return m
	}

	var b strings.Builder
	b.WriteString("(?i)")
	for _, r := range form {
		if isApostrophe(r) {
			b.WriteString("['’]")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	m.re = regexp.MustCompile(b.String())

	first, _ := utf8.DecodeRuneInString(form)
	last, _ := utf8.DecodeLastRuneInString(form)
	m.leftBounded = kind == Word && isWordRune(first)
	m.rightBounded = isWordRune(last)
	return m
}

// Form returns the literal form the matcher was compiled from.
func (m *Matcher) Form() string {
	return m.form
}

// FindAll returns the byte ranges of all accepted, non-overlapping
// occurrences in text, left to right.
func (m *Matcher) FindAll(text string) [][2]int {
	if m.re == nil {
		return nil
	}

	var out [][2]int
	pos := 0
	for pos < len(text) {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if m.bounded(text, start, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		// Rejected candidate: retry one rune further so an overlapping
		// occurrence is not skipped.
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

// ReplaceAll returns a new string with every accepted occurrence replaced by
// repl. The input is not modified.
func (m *Matcher) ReplaceAll(text, repl string) string {
	return m.ReplaceAllFunc(text, func(int) string { return repl })
}

// ReplaceAllFunc is like ReplaceAll but asks fn for the replacement of the
// n-th occurrence (0-based).
func (m *Matcher) ReplaceAllFunc(text string, fn func(n int) string) string {
	locs := m.FindAll(text)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for n, loc := range locs {
		b.WriteString(text[prev:loc[0]])
		b.WriteString(fn(n))
		prev = loc[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

// bounded checks the whole-word edges of a candidate occurrence.
func (m *Matcher) bounded(text string, start, end int) bool {
	if m.leftBounded && start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if m.rightBounded && end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
