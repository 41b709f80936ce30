package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/engine"
)

// captionsOptions holds options for the captions command.
type captionsOptions struct {
	io     ioOptions
	wpm    int
	clamp  bool
	format caption.Format
	window float64
}

// CaptionsCmd creates the captions command.
// The env parameter provides injectable dependencies for testing.
func CaptionsCmd(env *Env) *cobra.Command {
	var opts captionsOptions

	cmd := &cobra.Command{
		Use:   "captions [file]",
		Short: "Generate timed captions from plain text",
		Long: fmt.Sprintf(`Generate timed captions from plain text and a speaking rate.

Words are grouped so each caption lasts about --window seconds at the given
rate. Timing is computed from word positions; no audio is involved.

The rate must be within %d-%d words per minute. Out-of-range rates are
rejected unless --clamp is given. Default: config 'wpm', then %d.`,
			caption.DefaultBounds.Min, caption.DefaultBounds.Max, caption.DefaultWPM),
		Example: `  textkit captions script.txt -o script.srt
  textkit captions script.txt --wpm 120 --format vtt
  textkit captions script.txt --wpm 300 --clamp --format json
  cat script.txt | textkit captions --format text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.io.inputPath = inputArg(args)
			return runCaptions(cmd, env, opts)
		},
	}

	bindIOFlags(cmd, &opts.io)
	cmd.Flags().IntVar(&opts.wpm, "wpm", 0, "Speaking rate in words per minute")
	cmd.Flags().BoolVar(&opts.clamp, "clamp", false, "Clamp an out-of-range rate instead of failing")
	cmd.Flags().VarP(newFormatFlag(&opts.format, caption.SRTFormat), "format", "f", "Output format: srt, vtt, json, text")
	cmd.Flags().Float64Var(&opts.window, "window", caption.DefaultWindow, "Target caption duration in seconds")

	return cmd
}

// runCaptions executes the captions command.
// The rate is resolved before any input is read so a bad --wpm fails fast.
func runCaptions(cmd *cobra.Command, env *Env, opts captionsOptions) error {
	cfg := loadConfig(env)
	rate, err := resolveRate(opts.wpm, cfg.WPM, opts.clamp)
	if err != nil {
		return err
	}
	if opts.window <= 0 {
		return fmt.Errorf("--window must be positive, got %v: %w", opts.window, ErrInvalidFlag)
	}
	env.logger().Debug("captions", "rate", rate.String(), "format", opts.format.String(), "window", opts.window)

	return runTransform(cmd.Context(), env, cfg, opts.io, func(eng *engine.Engine, text string) (string, error) {
		return renderCaptions(eng, text, rate, opts.format)
	}, engine.WithCaptionWindow(opts.window))
}
