package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/cli"
	"github.com/alnah/go-textkit/internal/clipboard"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/interrupt"
	"github.com/alnah/go-textkit/internal/pattern"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitInterrupt  = interrupt.ExitInterrupt
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C cancels the context; a second one exits immediately.
	handler, ctx := interrupt.NewHandler(context.Background())
	defer handler.Stop()

	env := cli.DefaultEnv()
	rootCmd := newRootCmd(env)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if handler.WasInterrupted() {
			err = fmt.Errorf("%w: %w", context.Canceled, err)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		handler.Stop()
		os.Exit(exitCode(err))
	}
}

// newRootCmd builds the command tree on env.
func newRootCmd(env *cli.Env) *cobra.Command {
	var verbose, quiet bool

	rootCmd := &cobra.Command{
		Use:   "textkit",
		Short: "Split sentences, rewrite contractions, and synthesize captions",
		Long: `textkit transforms plain English text:

  sentences     split text into sentences, abbreviation-aware
  contractions  expand or compress contractions
  captions      timed SRT/VTT/JSON captions from a speaking rate
  batch         run one of the above over many files
  serve         expose the same operations as a JSON HTTP API`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env.Logger = setupLogging(env.Stderr, verbose, quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(cli.SentencesCmd(env))
	rootCmd.AddCommand(cli.ContractionsCmd(env))
	rootCmd.AddCommand(cli.CaptionsCmd(env))
	rootCmd.AddCommand(cli.BatchCmd(env))
	rootCmd.AddCommand(cli.ServeCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// setupLogging installs a text logger on w as the default and returns it.
func setupLogging(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Usage errors (ExitUsage = 2): bad flags, arguments and enum values.
	if isCobraUsageError(err) ||
		errors.Is(err, cli.ErrFlagConflict) || errors.Is(err, cli.ErrInvalidFlag) ||
		errors.Is(err, cli.ErrUnknownOperation) || errors.Is(err, contraction.ErrUnknownMode) ||
		errors.Is(err, caption.ErrUnknownFormat) || errors.Is(err, config.ErrUnknownKey) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3): the environment or pattern tables are unusable.
	if errors.Is(err, clipboard.ErrUnavailable) || errors.Is(err, pattern.ErrInvalidTable) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4): the input or a value is rejected.
	if errors.Is(err, cli.ErrFileNotFound) || errors.Is(err, cli.ErrOutputExists) ||
		errors.Is(err, cli.ErrInputTooLarge) || errors.Is(err, cli.ErrNoInput) ||
		errors.Is(err, clipboard.ErrEmpty) || errors.Is(err, caption.ErrRateOutOfRange) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitValidation
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, p := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, p) {
			return true
		}
	}
	return false
}
