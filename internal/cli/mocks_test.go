package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/alnah/go-textkit/internal/clipboard"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/engine"
	"github.com/alnah/go-textkit/internal/pattern"
	"github.com/alnah/go-textkit/internal/server"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock TableLoader
// ---------------------------------------------------------------------------

type mockTableLoader struct {
	LoadFileFunc func(path string) (pattern.Set, error)

	mu    sync.Mutex
	paths []string
}

func (m *mockTableLoader) LoadFile(path string) (pattern.Set, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.LoadFileFunc != nil {
		return m.LoadFileFunc(path)
	}
	return pattern.DefaultSet(), nil
}

func (m *mockTableLoader) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// ---------------------------------------------------------------------------
// Mock Clipboard - in-memory
// ---------------------------------------------------------------------------

type mockClipboard struct {
	ReadErr  error
	WriteErr error

	mu   sync.Mutex
	text string
}

func (m *mockClipboard) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	if m.text == "" {
		return "", clipboard.ErrEmpty
	}
	return m.text, nil
}

func (m *mockClipboard) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if text == "" {
		return clipboard.ErrEmpty
	}
	m.text = text
	return nil
}

func (m *mockClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// ---------------------------------------------------------------------------
// Mock Watcher - fires onChange a fixed number of times
// ---------------------------------------------------------------------------

type mockWatcher struct {
	// Changes is the number of onChange calls after the initial one.
	Changes int
	// BeforeChange runs before each change, e.g. to rewrite the file.
	BeforeChange func(i int)

	mu    sync.Mutex
	path  string
	calls int
}

func (m *mockWatcher) Watch(ctx context.Context, path string, onChange func() error) error {
	m.mu.Lock()
	m.path = path
	m.mu.Unlock()

	for i := 0; i <= m.Changes; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if i > 0 && m.BeforeChange != nil {
			m.BeforeChange(i)
		}
		m.mu.Lock()
		m.calls++
		m.mu.Unlock()
		if err := onChange(); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockWatcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ---------------------------------------------------------------------------
// Mock ServerFactory + Server
// ---------------------------------------------------------------------------

type mockServer struct {
	RunFunc func(ctx context.Context, addr string) error

	mu   sync.Mutex
	addr string
}

func (m *mockServer) Run(ctx context.Context, addr string) error {
	m.mu.Lock()
	m.addr = addr
	m.mu.Unlock()
	if m.RunFunc != nil {
		return m.RunFunc(ctx, addr)
	}
	return nil
}

func (m *mockServer) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addr
}

type mockServerFactory struct {
	mockServer *mockServer

	mu      sync.Mutex
	engine  *engine.Engine
	options int
}

func (m *mockServerFactory) NewServer(eng *engine.Engine, opts ...server.Option) Server {
	m.mu.Lock()
	m.engine = eng
	m.options = len(opts)
	m.mu.Unlock()
	if m.mockServer == nil {
		m.mockServer = &mockServer{}
	}
	return m.mockServer
}

func (m *mockServerFactory) Engine() *engine.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine
}

// errMock is a generic error for failure injection.
var errMock = errors.New("mock failure")

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ TableLoader   = (*mockTableLoader)(nil)
	_ Clipboard     = (*mockClipboard)(nil)
	_ Watcher       = (*mockWatcher)(nil)
	_ ServerFactory = (*mockServerFactory)(nil)
	_ Server        = (*mockServer)(nil)
)
