// Package watch re-runs an action whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// File calls onChange once immediately, then after every write or create of
// path, until ctx is done. Returns nil on cancellation.
//
// The parent directory is watched rather than the file itself so that editors
// which save by rename (vim, many IDEs) keep being observed.
// An error returned by onChange stops the watch and is returned.
func File(ctx context.Context, path string, onChange func() error) error {
	return FileDebounced(ctx, path, DefaultDebounce, onChange)
}

// FileDebounced is File with an explicit debounce interval.
func FileDebounced(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	if err := onChange(); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %q: %w", path, err)
		}
	}
}
