package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-textkit/internal/clipboard"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/engine"
	"github.com/alnah/go-textkit/internal/pattern"
	"github.com/alnah/go-textkit/internal/server"
	"github.com/alnah/go-textkit/internal/watch"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
	// Logger receives debug and server logs. Nil means slog.Default(),
	// resolved at call time so a logger installed after DefaultEnv is honored.
	Logger *slog.Logger

	// Collaborators
	ConfigLoader  ConfigLoader
	TableLoader   TableLoader
	Clipboard     Clipboard
	Watcher       Watcher
	ServerFactory ServerFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// TableLoader loads pattern table overrides from a file.
type TableLoader interface {
	LoadFile(path string) (pattern.Set, error)
}

// Clipboard reads and writes clipboard text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Watcher calls onChange once, then on every change of path, until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, path string, onChange func() error) error
}

// Server serves the engine over HTTP until ctx is done.
type Server interface {
	Run(ctx context.Context, addr string) error
}

// ServerFactory creates HTTP servers.
type ServerFactory interface {
	NewServer(eng *engine.Engine, opts ...server.Option) Server
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EnvOption {
	return func(e *Env) {
		e.Logger = l
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithTableLoader sets the pattern table loader.
func WithTableLoader(l TableLoader) EnvOption {
	return func(e *Env) {
		e.TableLoader = l
	}
}

// WithClipboard sets the clipboard.
func WithClipboard(c Clipboard) EnvOption {
	return func(e *Env) {
		e.Clipboard = c
	}
}

// WithWatcher sets the file watcher.
func WithWatcher(w Watcher) EnvOption {
	return func(e *Env) {
		e.Watcher = w
	}
}

// WithServerFactory sets the server factory.
func WithServerFactory(f ServerFactory) EnvOption {
	return func(e *Env) {
		e.ServerFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	env := &Env{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		Now:           time.Now,
		TableLoader:   &defaultTableLoader{},
		Clipboard:     clipboard.System{},
		Watcher:       &defaultWatcher{},
		ServerFactory: &defaultServerFactory{},
	}
	// Resolved on each Load so WithGetenv applies to config fallbacks too.
	env.ConfigLoader = &defaultConfigLoader{getenv: func(key string) string {
		return env.Getenv(key)
	}}
	return env
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// logger returns Logger, or slog.Default() if unset.
func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct {
	getenv func(string) string
}

func (l defaultConfigLoader) Load() (config.Config, error) {
	return config.LoadEnv(l.getenv)
}

// defaultTableLoader implements TableLoader using the pattern package.
type defaultTableLoader struct{}

func (defaultTableLoader) LoadFile(path string) (pattern.Set, error) {
	return pattern.LoadFile(path)
}

// defaultWatcher implements Watcher using fsnotify.
type defaultWatcher struct{}

func (defaultWatcher) Watch(ctx context.Context, path string, onChange func() error) error {
	return watch.File(ctx, path, onChange)
}

// defaultServerFactory implements ServerFactory using the server package.
type defaultServerFactory struct{}

func (defaultServerFactory) NewServer(eng *engine.Engine, opts ...server.Option) Server {
	return server.New(eng, opts...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ TableLoader   = (*defaultTableLoader)(nil)
	_ Clipboard     = clipboard.System{}
	_ Watcher       = (*defaultWatcher)(nil)
	_ ServerFactory = (*defaultServerFactory)(nil)
	_ Server        = (*server.Server)(nil)
)
