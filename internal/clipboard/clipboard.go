// Package clipboard reads and writes the system clipboard as text.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var (
	// ErrEmpty indicates an attempt to copy empty text, or an empty clipboard on read.
	ErrEmpty = errors.New("clipboard text is empty")

	// ErrUnavailable indicates no clipboard utility is available
	// (e.g. no xclip/xsel/wl-clipboard on Linux).
	ErrUnavailable = errors.New("clipboard unavailable")
)

// System is the system clipboard.
type System struct{}

// Read returns the clipboard text. An empty clipboard returns ErrEmpty.
func (System) Read() (string, error) {
	return Read()
}

// Write replaces the clipboard text.
func (System) Write(text string) error {
	return Write(text)
}

// Read returns the clipboard text. An empty clipboard returns ErrEmpty.
func Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %v: %w", err, ErrUnavailable)
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Write replaces the clipboard text. Empty text returns ErrEmpty without
// touching the clipboard.
func Write(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %v: %w", err, ErrUnavailable)
	}
	return nil
}
