package pattern

// Table names.
const (
	AbbreviationsName = "abbreviations"
	ContractionsName  = "contractions"
)

// Abbreviations returns the built-in abbreviation table.
// Only Source is meaningful: these tokens are protected from sentence
// splitting, never replaced. Words that commonly end a sentence ("no.",
// month names that double as first names) are deliberately absent.
func Abbreviations() Table {
	forms := []string{
		"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Jr.",
		"St.", "Mt.", "vs.", "etc.", "e.g.", "i.e.",
		"a.m.", "p.m.", "U.S.", "U.K.",
		"Inc.", "Ltd.", "Corp.", "approx.", "Fig.",
	}
	entries := make([]Entry, len(forms))
	for i, f := range forms {
		entries[i] = Entry{Source: f, Target: f}
	}
	return NewTable(AbbreviationsName, entries...)
}

// Contractions returns the built-in contraction table.
//
// Order matters. Specific negations come before the generic "n't" suffix so
// forms like "won't" and "can't" are rewritten before the generic rule could
// turn them into "wo not" or "ca not". "ain't" shares its expansion with
// "isn't" and comes later, so compressing "is not" yields "isn't".
func Contractions() Table {
	return NewTable(ContractionsName,
		Entry{Source: "won't", Target: "will not"},
		Entry{Source: "can't", Target: "cannot"},
		Entry{Source: "shan't", Target: "shall not"},
		Entry{Source: "aren't", Target: "are not"},
		Entry{Source: "isn't", Target: "is not"},
		Entry{Source: "wasn't", Target: "was not"},
		Entry{Source: "weren't", Target: "were not"},
		Entry{Source: "don't", Target: "do not"},
		Entry{Source: "doesn't", Target: "does not"},
		Entry{Source: "didn't", Target: "did not"},
		Entry{Source: "haven't", Target: "have not"},
		Entry{Source: "hasn't", Target: "has not"},
		Entry{Source: "hadn't", Target: "had not"},
		Entry{Source: "couldn't", Target: "could not"},
		Entry{Source: "shouldn't", Target: "should not"},
		Entry{Source: "wouldn't", Target: "would not"},
		Entry{Source: "mustn't", Target: "must not"},
		Entry{Source: "needn't", Target: "need not"},
		Entry{Source: "ain't", Target: "is not"},
		Entry{Source: "n't", Target: " not", Kind: Suffix},

		Entry{Source: "I'm", Target: "I am"},
		Entry{Source: "I've", Target: "I have"},
		Entry{Source: "I'll", Target: "I will"},
		Entry{Source: "I'd", Target: "I would"},
		Entry{Source: "you're", Target: "you are"},
		Entry{Source: "you've", Target: "you have"},
		Entry{Source: "you'll", Target: "you will"},
		Entry{Source: "you'd", Target: "you would"},
		Entry{Source: "he's", Target: "he is"},
		Entry{Source: "he'll", Target: "he will"},
		Entry{Source: "he'd", Target: "he would"},
		Entry{Source: "she's", Target: "she is"},
		Entry{Source: "she'll", Target: "she will"},
		Entry{Source: "she'd", Target: "she would"},
		Entry{Source: "it's", Target: "it is"},
		Entry{Source: "it'll", Target: "it will"},
		Entry{Source: "we're", Target: "we are"},
		Entry{Source: "we've", Target: "we have"},
		Entry{Source: "we'll", Target: "we will"},
		Entry{Source: "we'd", Target: "we would"},
		Entry{Source: "they're", Target: "they are"},
		Entry{Source: "they've", Target: "they have"},
		Entry{Source: "they'll", Target: "they will"},
		Entry{Source: "they'd", Target: "they would"},
		Entry{Source: "that's", Target: "that is"},
		Entry{Source: "there's", Target: "there is"},
		Entry{Source: "what's", Target: "what is"},
		Entry{Source: "who's", Target: "who is"},
		Entry{Source: "where's", Target: "where is"},
		Entry{Source: "here's", Target: "here is"},
		Entry{Source: "let's", Target: "let us"},
	)
}
