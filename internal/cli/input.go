package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/engine"
	"github.com/alnah/go-textkit/internal/format"
	"github.com/alnah/go-textkit/internal/pattern"
)

// stdinPath is the file argument that explicitly selects stdin.
const stdinPath = "-"

// loadConfig loads the config, warning instead of failing so a broken config
// file never blocks a one-off transform.
func loadConfig(env *Env) config.Config {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
		return config.Config{}
	}
	return cfg
}

// loadEngine builds the engine from the tables file named by the flag, or by
// config when the flag is empty, or from the built-in tables.
func loadEngine(env *Env, cfg config.Config, tablesFlag string, opts ...engine.Option) (*engine.Engine, error) {
	path := tablesFlag
	if path == "" {
		path = cfg.Tables
	}
	if path == "" {
		return engine.New(pattern.DefaultSet(), opts...), nil
	}

	path = config.ExpandPath(path)
	set, err := env.TableLoader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load pattern tables: %w", err)
	}
	env.logger().Debug("loaded pattern tables",
		"path", path,
		"abbreviations", set.Abbreviations.Len(),
		"contractions", set.Contractions.Len(),
	)
	return engine.New(set, opts...), nil
}

// resolveRate picks the speaking rate: flag, then config, then the default.
// Out-of-range rates are rejected unless clamp is set.
func resolveRate(flagWPM, cfgWPM int, clamp bool) (caption.Rate, error) {
	wpm := flagWPM
	if wpm == 0 {
		wpm = cfgWPM
	}
	if wpm == 0 {
		return caption.DefaultRate, nil
	}
	if clamp {
		return caption.DefaultBounds.Clamp(wpm), nil
	}
	return caption.DefaultBounds.Parse(wpm)
}

// readInput reads the text to transform from the clipboard, stdin, or a file.
// Input larger than maxBytes returns ErrInputTooLarge.
func readInput(env *Env, opts ioOptions, maxBytes int64) (string, error) {
	switch {
	case opts.fromClipboard:
		text, err := env.Clipboard.Read()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		if int64(len(text)) > maxBytes {
			return "", tooLarge("clipboard", int64(len(text)), maxBytes)
		}
		return text, nil

	case opts.readsStdin():
		if isTerminal(env.Stdin) {
			return "", fmt.Errorf("no file given and stdin is a terminal (pipe text or pass a file): %w", ErrNoInput)
		}
		data, err := io.ReadAll(io.LimitReader(env.Stdin, maxBytes+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if int64(len(data)) > maxBytes {
			return "", fmt.Errorf("stdin exceeds %s: %w", format.Size(maxBytes), ErrInputTooLarge)
		}
		return string(data), nil

	default:
		return readFile(opts.inputPath, maxBytes)
	}
}

// readFile reads path, checking existence and size before reading.
func readFile(path string, maxBytes int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("cannot access input file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("input is a directory: %s", path)
	}
	if info.Size() > maxBytes {
		return "", tooLarge(path, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-specified input file
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func tooLarge(what string, size, maxBytes int64) error {
	return fmt.Errorf("%s is %s, limit is %s (raise it with: textkit config set %s <bytes>): %w",
		what, format.Size(size), format.Size(maxBytes), config.KeyMaxInput, ErrInputTooLarge)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
