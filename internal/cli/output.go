package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-textkit/internal/config"
)

// emit sends a result to the output file (or stdout) and, with --copy, to
// the clipboard.
func emit(env *Env, opts ioOptions, cfg config.Config, result string) error {
	if opts.output != "" {
		path := config.ResolveOutputPath(opts.output, cfg.OutputDir, "")
		if err := writeFileAtomic(path, result); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Done: %s\n", path)
	} else if _, err := io.WriteString(env.Stdout, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if opts.copy {
		if err := env.Clipboard.Write(result); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(env.Stderr, "Copied to clipboard")
	}
	return nil
}

// writeFileAtomic writes content to path atomically.
// It fails if the file already exists (O_EXCL), preventing accidental overwrites.
// On write failure, the partial file is removed.
func writeFileAtomic(path, content string) error {
	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("output file already exists: %s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}
