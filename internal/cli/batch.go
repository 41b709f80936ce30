package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/engine"
	"github.com/alnah/go-textkit/internal/format"
)

// MaxParallel is the upper bound for concurrently processed batch files.
const MaxParallel = 8

// batchOptions holds options for the batch command.
type batchOptions struct {
	files     []string
	op        Operation
	wpm       int
	clamp     bool
	format    caption.Format
	parallel  int
	outputDir string
	tables    string
}

// clampParallel constrains the worker count to [1, MaxParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxParallel {
		return MaxParallel
	}
	return n
}

// batchOutputName derives "<name>.<op><ext>" from an input path.
// Example: ("notes/talk.md", captions, srt) -> "talk.captions.srt"
func batchOutputName(inputPath string, op Operation, f caption.Format) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "." + op.String() + op.Ext(f)
}

// batchOutputPath places the output in outputDir, or next to the input.
func batchOutputPath(inputPath, outputDir string, op Operation, f caption.Format) string {
	name := batchOutputName(inputPath, op, f)
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return config.ResolveOutputPath("", outputDir, name)
}

// BatchCmd creates the batch command.
// The env parameter provides injectable dependencies for testing.
func BatchCmd(env *Env) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch --op <operation> <file>...",
		Short: "Apply one operation to many files in parallel",
		Long: `Apply one operation to many files in parallel.

Operations: sentences, expand, compress, captions.

Each input <name>.<ext> produces <name>.<op>.txt (or .<format> for captions)
next to the input, or in --output-dir / config 'output-dir' when set.
Existing outputs are never overwritten. The first failure aborts the batch.`,
		Example: `  textkit batch --op sentences chapters/*.txt
  textkit batch --op captions --wpm 140 --format vtt -p 4 scripts/*.txt
  textkit batch --op expand --output-dir out/ a.txt b.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.files = args
			return runBatch(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().Var(newOperationFlag(&opts.op), "op", "Operation: sentences, expand, compress, captions (required)")
	cmd.Flags().IntVar(&opts.wpm, "wpm", 0, "Speaking rate for captions")
	cmd.Flags().BoolVar(&opts.clamp, "clamp", false, "Clamp an out-of-range rate instead of failing")
	cmd.Flags().VarP(newFormatFlag(&opts.format, caption.SRTFormat), "format", "f", "Caption format: srt, vtt, json, text")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", MaxParallel, fmt.Sprintf("Max files processed concurrently (1-%d)", MaxParallel))
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for outputs (default: config 'output-dir', else next to input)")
	cmd.Flags().StringVar(&opts.tables, "tables", "", "YAML pattern table overrides (default: config 'tables')")

	// Error is ignored: MarkFlagRequired only fails if the flag doesn't exist.
	_ = cmd.MarkFlagRequired("op")

	return cmd
}

// runBatch processes every file with the selected operation.
func runBatch(ctx context.Context, env *Env, opts batchOptions) error {
	// === VALIDATION (fail-fast) ===

	if opts.op.IsZero() {
		return fmt.Errorf("--op is required: %w", ErrUnknownOperation)
	}

	cfg := loadConfig(env)

	var rate caption.Rate
	if opts.op == CaptionsOp {
		r, err := resolveRate(opts.wpm, cfg.WPM, opts.clamp)
		if err != nil {
			return err
		}
		rate = r
	}

	eng, err := loadEngine(env, cfg, opts.tables)
	if err != nil {
		return err
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	outputDir = config.ExpandPath(outputDir)

	render := batchRenderer(opts.op, rate, opts.format)
	maxInput := cfg.MaxInputOrDefault()
	parallel := clampParallel(opts.parallel)

	// === PROCESS ===

	start := env.Now()
	fmt.Fprintf(env.Stderr, "Processing %d file(s): %s (parallel %d)...\n", len(opts.files), opts.op, parallel)

	outputs, err := processAll(ctx, opts.files, parallel, func(ctx context.Context, path string) (string, error) {
		text, err := readFile(path, maxInput)
		if err != nil {
			return "", err
		}
		result, err := render(eng, text)
		if err != nil {
			return "", err
		}
		out := batchOutputPath(path, outputDir, opts.op, opts.format)
		if err := writeFileAtomic(out, result); err != nil {
			return "", err
		}
		fmt.Fprintf(env.Stderr, "  %s -> %s\n", path, out)
		return out, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Done: %d file(s) in %s\n", len(outputs), format.Duration(env.Now().Sub(start)))
	return nil
}

// batchRenderer returns the renderer for op.
func batchRenderer(op Operation, rate caption.Rate, f caption.Format) renderFunc {
	switch op {
	case ExpandOp, CompressOp:
		mode := contraction.MustParseMode(op.String())
		return func(eng *engine.Engine, text string) (string, error) {
			return renderContractions(eng, text, mode), nil
		}
	case CaptionsOp:
		return func(eng *engine.Engine, text string) (string, error) {
			return renderCaptions(eng, text, rate, f)
		}
	default:
		return func(eng *engine.Engine, text string) (string, error) {
			return renderSentences(eng, text, false, false)
		}
	}
}

// processAll runs fn over paths with at most maxParallel in flight.
// Results are returned in input order. The first error cancels the rest.
func processAll(
	ctx context.Context,
	paths []string,
	maxParallel int,
	fn func(ctx context.Context, path string) (string, error),
) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if maxParallel < 1 {
		maxParallel = 1
	}

	results := make([]string, len(paths))
	sem := make(chan struct{}, maxParallel)

	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := fn(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
