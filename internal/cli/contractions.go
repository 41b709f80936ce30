package cli

import (
	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/engine"
)

// contractionsOptions holds validated options for the contractions command.
type contractionsOptions struct {
	io   ioOptions
	mode contraction.Mode
}

// ContractionsCmd creates the contractions command.
// The env parameter provides injectable dependencies for testing.
func ContractionsCmd(env *Env) *cobra.Command {
	var opts contractionsOptions

	cmd := &cobra.Command{
		Use:   "contractions [file]",
		Short: "Expand or compress English contractions",
		Long: `Expand contractions ("can't" -> "cannot") or compress expansions
("do not" -> "don't").

Matching is whole-word and case-insensitive. Replacements use the table's
canonical spelling, so "Can't" expands to "cannot". Compression is not an
exact inverse: contractions sharing an expansion ("ain't", "isn't") come back
as the first one in the table.`,
		Example: `  textkit contractions letter.txt
  textkit contractions letter.txt -m compress -o casual.txt
  echo "I can't go" | textkit contractions
  textkit contractions draft.txt --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.io.inputPath = inputArg(args)
			return runContractions(cmd, env, opts)
		},
	}

	bindIOFlags(cmd, &opts.io)
	cmd.Flags().VarP(newModeFlag(&opts.mode, contraction.Expand), "mode", "m", "Direction: expand, compress")

	return cmd
}

// runContractions executes the contractions command.
func runContractions(cmd *cobra.Command, env *Env, opts contractionsOptions) error {
	return runTransform(cmd.Context(), env, loadConfig(env), opts.io, func(eng *engine.Engine, text string) (string, error) {
		return renderContractions(eng, text, opts.mode), nil
	})
}
