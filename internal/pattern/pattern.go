// Package pattern holds the ordered lookup tables shared by the text
// transformers: abbreviations protected from sentence splitting, and
// contractions rewritten in either direction.
//
// Tables are immutable values. Every accessor returns a copy, so a Table can
// be shared across goroutines without locking.
package pattern

import "fmt"

// Kind controls how the source form of an entry is matched.
type Kind int

const (
	// Word matches the source form as a whole word.
	Word Kind = iota
	// Suffix matches the source form at the end of a word. Only the trailing
	// edge is bounded, so "n't" matches inside "mightn't".
	Suffix
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Suffix:
		return "suffix"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Entry is a single (source, target) pair.
// For abbreviations only Source is used. For contractions Source is the
// contracted form and Target the expanded form.
type Entry struct {
	Source string
	Target string
	Kind   Kind
}

// Table is an ordered, immutable list of entries.
// Order is significant: transformers fold over entries in table order and
// reverse derivation keeps the first entry for a given target.
type Table struct {
	name    string
	entries []Entry
}

// NewTable creates a table from entries. The slice is copied.
func NewTable(name string, entries ...Entry) Table {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Table{name: name, entries: cp}
}

// Name returns the table name ("abbreviations", "contractions", ...).
func (t Table) Name() string {
	return t.name
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// IsZero reports whether the table has no entries.
func (t Table) IsZero() bool {
	return len(t.entries) == 0
}

// Entries returns a copy of the entries in table order.
func (t Table) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Sources returns the source forms in table order.
func (t Table) Sources() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Source
	}
	return out
}

// Reverse derives the target->source entries in table order.
// When several entries share a target, only the first one is kept; later
// duplicates are dropped silently. Suffix entries are expand-only and are
// never part of the reverse derivation.
func (t Table) Reverse() []Entry {
	seen := make(map[string]bool, len(t.entries))
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Kind == Suffix || seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		out = append(out, Entry{Source: e.Target, Target: e.Source, Kind: Word})
	}
	return out
}

// Lookup returns the table as a map.
// Forward maps source->target (a later duplicate source overwrites an earlier
// one). Reverse maps target->source using the first-occurrence rule of Reverse.
func (t Table) Lookup(forward bool) map[string]string {
	if !forward {
		rev := t.Reverse()
		m := make(map[string]string, len(rev))
		for _, e := range rev {
			m[e.Source] = e.Target
		}
		return m
	}
	m := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		m[e.Source] = e.Target
	}
	return m
}

// Set groups the tables the engine is configured with.
type Set struct {
	Abbreviations Table
	Contractions  Table
}

// DefaultSet returns the built-in abbreviation and contraction tables.
func DefaultSet() Set {
	return Set{
		Abbreviations: Abbreviations(),
		Contractions:  Contractions(),
	}
}
