package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/engine"
	"github.com/alnah/go-textkit/internal/sentence"
)

// ioOptions holds the input and output flags shared by the transform commands.
type ioOptions struct {
	inputPath     string
	output        string
	tables        string
	copy          bool
	fromClipboard bool
	watch         bool
}

// bindIOFlags registers the shared flags on cmd.
func bindIOFlags(cmd *cobra.Command, o *ioOptions) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write to file instead of stdout (fails if it exists)")
	cmd.Flags().StringVar(&o.tables, "tables", "", "YAML pattern table overrides (default: config 'tables')")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Also copy the result to the clipboard")
	cmd.Flags().BoolVar(&o.fromClipboard, "from-clipboard", false, "Read input from the clipboard")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "Re-run whenever the input file changes")
}

// inputArg returns the optional positional file argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (o ioOptions) readsStdin() bool {
	return !o.fromClipboard && (o.inputPath == "" || o.inputPath == stdinPath)
}

// validate rejects flag combinations that cannot work together.
func (o ioOptions) validate() error {
	if o.fromClipboard && o.inputPath != "" && o.inputPath != stdinPath {
		return fmt.Errorf("--from-clipboard cannot be combined with a file argument: %w", ErrFlagConflict)
	}
	if o.watch {
		if o.fromClipboard || o.readsStdin() {
			return fmt.Errorf("--watch requires a file argument: %w", ErrFlagConflict)
		}
		if o.output != "" {
			return fmt.Errorf("--watch writes to stdout and cannot be combined with --output: %w", ErrFlagConflict)
		}
	}
	return nil
}

// renderFunc turns input text into command output.
type renderFunc func(eng *engine.Engine, text string) (string, error)

// runTransform reads input, renders it and emits the result, once or on
// every change of the input file with --watch.
func runTransform(ctx context.Context, env *Env, cfg config.Config, opts ioOptions, render renderFunc, engineOpts ...engine.Option) error {
	if err := opts.validate(); err != nil {
		return err
	}

	eng, err := loadEngine(env, cfg, opts.tables, engineOpts...)
	if err != nil {
		return err
	}
	maxInput := cfg.MaxInputOrDefault()

	run := func() error {
		text, err := readInput(env, opts, maxInput)
		if err != nil {
			return err
		}
		result, err := render(eng, text)
		if err != nil {
			return err
		}
		return emit(env, opts, cfg, result)
	}

	if !opts.watch {
		return run()
	}

	fmt.Fprintf(env.Stderr, "Watching %s (Ctrl+C to stop)...\n", opts.inputPath)
	// A failed run is reported and the watch goes on: editors often save
	// through an empty or partial file.
	return env.Watcher.Watch(ctx, opts.inputPath, func() error {
		if err := run(); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Renderers - shared by the single-input commands and batch
// ---------------------------------------------------------------------------

// renderSentences writes one sentence per line, optionally numbered, or a
// JSON array.
func renderSentences(eng *engine.Engine, text string, numbered, asJSON bool) (string, error) {
	switch {
	case asJSON && numbered:
		out := eng.NumberedSentences(text)
		if out == nil {
			out = []sentence.Sentence{}
		}
		return marshalJSON(out)
	case asJSON:
		out := eng.SegmentSentences(text)
		if out == nil {
			out = []string{}
		}
		return marshalJSON(out)
	}

	var sb strings.Builder
	for i, s := range eng.SegmentSentences(text) {
		if numbered {
			fmt.Fprintf(&sb, "%d. ", i+1)
		}
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// renderContractions returns text with contractions rewritten.
func renderContractions(eng *engine.Engine, text string, mode contraction.Mode) string {
	return eng.TransformContractions(text, mode)
}

// renderCaptions synthesizes captions and renders them in the given format.
func renderCaptions(eng *engine.Engine, text string, rate caption.Rate, f caption.Format) (string, error) {
	var sb strings.Builder
	if err := caption.Write(&sb, eng.SynthesizeCaptions(text, rate), f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// marshalJSON renders v as indented JSON with a trailing newline.
func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}
