package pattern

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// fileEntry is the YAML shape of one contraction entry.
type fileEntry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Suffix bool   `yaml:"suffix"`
}

// file is the YAML shape of a pattern table override file.
//
//	abbreviations: ["Dr.", "Mr."]
//	contractions:
//	  - {source: "can't", target: "cannot"}
//	  - {source: "n't", target: " not", suffix: true}
//
// A table that is absent from the file keeps its built-in value.
// A table that is present replaces the built-in one entirely.
type file struct {
	Abbreviations []string    `yaml:"abbreviations"`
	Contractions  []fileEntry `yaml:"contractions"`
}

// LoadFile reads a YAML override file on top of DefaultSet.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user config
	if err != nil {
		return Set{}, fmt.Errorf("read pattern tables %q: %w: %w", path, ErrInvalidTable, err)
	}
	set, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes YAML override data on top of DefaultSet.
func Parse(data []byte) (Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("parse YAML: %v: %w", err, ErrInvalidTable)
	}

	set := DefaultSet()

	if f.Abbreviations != nil {
		entries := make([]Entry, 0, len(f.Abbreviations))
		for i, a := range f.Abbreviations {
			a = strings.TrimSpace(a)
			if a == "" {
				return Set{}, fmt.Errorf("abbreviation %d is empty: %w", i+1, ErrInvalidTable)
			}
			if hasPrivateUse(a) {
				return Set{}, fmt.Errorf("abbreviation %d contains a private-use character: %w", i+1, ErrInvalidTable)
			}
			entries = append(entries, Entry{Source: a, Target: a})
		}
		set.Abbreviations = NewTable(AbbreviationsName, entries...)
	}

	if f.Contractions != nil {
		entries := make([]Entry, 0, len(f.Contractions))
		for i, c := range f.Contractions {
			if strings.TrimSpace(c.Source) == "" {
				return Set{}, fmt.Errorf("contraction %d has an empty source: %w", i+1, ErrInvalidTable)
			}
			if c.Target == "" {
				return Set{}, fmt.Errorf("contraction %d (%q) has an empty target: %w", i+1, c.Source, ErrInvalidTable)
			}
			kind := Word
			if c.Suffix {
				kind = Suffix
			}
			entries = append(entries, Entry{Source: c.Source, Target: c.Target, Kind: kind})
		}
		set.Contractions = NewTable(ContractionsName, entries...)
	}

	return set, nil
}

// hasPrivateUse reports whether s contains a private-use rune. Those runes
// are reserved for the placeholders that hide abbreviations.
func hasPrivateUse(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Co, r)
	})
}
