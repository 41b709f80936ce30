// Package interrupt turns SIGINT/SIGTERM into context cancellation, with a
// second signal forcing an immediate exit.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// ForceWindow is how long after the first signal a second one forces exit.
const ForceWindow = 2 * time.Second

const (
	stoppingMessage = "\nStopping... (Ctrl+C again to force)"
	forcedMessage   = "\nAborted."
)

// Handler cancels a context on the first signal so long-running commands
// (serve, watch, batch) can drain. A second signal within ForceWindow exits
// the process immediately.
type Handler struct {
	mu          sync.Mutex
	first       time.Time
	interrupted bool
	stopped     bool
	cancel      context.CancelFunc
	done        chan struct{}

	exit   func(int)
	now    func() time.Time
	stderr io.Writer
}

// Options holds injectable dependencies for testing.
type Options struct {
	Signals <-chan os.Signal
	Exit    func(int)
	Now     func() time.Time
	// Stderr must be safe for concurrent writes.
	Stderr io.Writer
}

// NewHandler listens for SIGINT/SIGTERM and returns the handler and a
// context canceled on the first one.
func NewHandler(parent context.Context) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return NewHandlerWithOptions(parent, Options{Signals: sigCh})
}

// NewHandlerWithOptions creates a handler with injected dependencies.
func NewHandlerWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		cancel: cancel,
		done:   make(chan struct{}),
		exit:   opts.Exit,
		now:    opts.Now,
		stderr: opts.Stderr,
	}
	if h.exit == nil {
		h.exit = os.Exit
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if opts.Signals != nil {
		go h.listen(opts.Signals)
	}
	return h, ctx
}

func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case _, ok := <-sigCh:
			if !ok {
				return
			}
			if h.handle() {
				return
			}
		}
	}
}

// handle processes one signal and reports whether listening should end.
func (h *Handler) handle() bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return true
	}
	now := h.now()

	if !h.interrupted {
		h.interrupted = true
		h.first = now
		h.mu.Unlock()
		fmt.Fprintln(h.stderr, stoppingMessage)
		h.cancel()
		return false
	}

	if now.Sub(h.first) > ForceWindow {
		// Late second signal: restart the window.
		h.first = now
		h.mu.Unlock()
		fmt.Fprintln(h.stderr, stoppingMessage)
		return false
	}
	h.mu.Unlock()

	fmt.Fprintln(h.stderr, forcedMessage)
	h.exit(ExitInterrupt)
	return true
}

// WasInterrupted reports whether at least one signal was received.
func (h *Handler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

// Stop releases the signal handler. Safe to call more than once.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	close(h.done)
	h.cancel()
}
