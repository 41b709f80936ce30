package cli

import (
	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/engine"
)

// sentencesOptions holds validated options for the sentences command.
type sentencesOptions struct {
	io       ioOptions
	numbered bool
	json     bool
}

// SentencesCmd creates the sentences command.
// The env parameter provides injectable dependencies for testing.
func SentencesCmd(env *Env) *cobra.Command {
	var opts sentencesOptions

	cmd := &cobra.Command{
		Use:   "sentences [file]",
		Short: "Split text into sentences",
		Long: `Split text into sentences, one per line.

A sentence ends at a run of '.', '!' or '?' followed by whitespace.
Abbreviations such as "Dr." and "e.g." never end a sentence.

Reads the file argument, or stdin when none is given (or "-").`,
		Example: `  textkit sentences notes.txt
  cat notes.txt | textkit sentences --numbered
  textkit sentences notes.txt --json -o notes.json
  textkit sentences --from-clipboard --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.io.inputPath = inputArg(args)
			return runSentences(cmd, env, opts)
		},
	}

	bindIOFlags(cmd, &opts.io)
	cmd.Flags().BoolVarP(&opts.numbered, "numbered", "n", false, "Prefix each sentence with its number")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Emit a JSON array")

	return cmd
}

// runSentences executes the sentences command.
func runSentences(cmd *cobra.Command, env *Env, opts sentencesOptions) error {
	return runTransform(cmd.Context(), env, loadConfig(env), opts.io, func(eng *engine.Engine, text string) (string, error) {
		return renderSentences(eng, text, opts.numbered, opts.json)
	})
}
