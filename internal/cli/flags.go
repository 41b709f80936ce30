package cli

import (
	"github.com/spf13/pflag"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/contraction"
)

// Enum flags validate at parse time, so a bad value is reported by Cobra as
// a usage error before any command runs.

// modeFlag binds --mode to a contraction.Mode.
type modeFlag struct{ value *contraction.Mode }

func newModeFlag(p *contraction.Mode, def contraction.Mode) *modeFlag {
	*p = def
	return &modeFlag{value: p}
}

func (f *modeFlag) String() string { return f.value.String() }
func (f *modeFlag) Type() string   { return "mode" }

func (f *modeFlag) Set(s string) error {
	m, err := contraction.ParseMode(s)
	if err != nil {
		return err
	}
	*f.value = m
	return nil
}

// formatFlag binds --format to a caption.Format.
type formatFlag struct{ value *caption.Format }

func newFormatFlag(p *caption.Format, def caption.Format) *formatFlag {
	*p = def
	return &formatFlag{value: p}
}

func (f *formatFlag) String() string { return f.value.String() }
func (f *formatFlag) Type() string   { return "format" }

func (f *formatFlag) Set(s string) error {
	v, err := caption.ParseFormat(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

// operationFlag binds --op to an Operation.
type operationFlag struct{ value *Operation }

func newOperationFlag(p *Operation) *operationFlag {
	return &operationFlag{value: p}
}

func (f *operationFlag) String() string { return f.value.String() }
func (f *operationFlag) Type() string   { return "operation" }

func (f *operationFlag) Set(s string) error {
	op, err := ParseOperation(s)
	if err != nil {
		return err
	}
	*f.value = op
	return nil
}

// Compile-time interface verification.
var (
	_ pflag.Value = (*modeFlag)(nil)
	_ pflag.Value = (*formatFlag)(nil)
	_ pflag.Value = (*operationFlag)(nil)
)
