package cli

import (
	"fmt"
	"strings"

	"github.com/alnah/go-textkit/internal/caption"
)

// Operation name constants.
const (
	OpSentences = "sentences"
	OpExpand    = "expand"
	OpCompress  = "compress"
	OpCaptions  = "captions"
)

// Operation is a validated batch operation.
// Zero value is invalid and must not be used.
// Use ParseOperation to create from user input, or the pre-parsed constants.
type Operation struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Operation{}

// Pre-parsed operations.
var (
	SentencesOp = Operation{name: OpSentences}
	ExpandOp    = Operation{name: OpExpand}
	CompressOp  = Operation{name: OpCompress}
	CaptionsOp  = Operation{name: OpCaptions}
)

// operationOrder is the display order for help and error messages.
var operationOrder = []string{OpSentences, OpExpand, OpCompress, OpCaptions}

// ParseOperation validates and parses an operation name.
// Returns ErrUnknownOperation if the name is empty or not recognized.
func ParseOperation(s string) (Operation, error) {
	if s == "" {
		return Operation{}, fmt.Errorf("operation cannot be empty: %w", ErrUnknownOperation)
	}
	for _, name := range operationOrder {
		if s == name {
			return Operation{name: name}, nil
		}
	}
	return Operation{}, fmt.Errorf("unknown operation %q (use %s): %w",
		s, strings.Join(operationOrder, ", "), ErrUnknownOperation)
}

// MustParseOperation parses an operation, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParseOperation(s string) Operation {
	op, err := ParseOperation(s)
	if err != nil {
		panic(err)
	}
	return op
}

// String returns the operation name.
// Returns empty string for zero value.
func (o Operation) String() string {
	return o.name
}

// IsZero returns true if no operation is set.
func (o Operation) IsZero() bool {
	return o.name == ""
}

// Ext returns the output file extension for the operation.
// Captions use the extension of the caption format; everything else is text.
func (o Operation) Ext(f caption.Format) string {
	if o == CaptionsOp {
		return f.Ext()
	}
	return ".txt"
}
