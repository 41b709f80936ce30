package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader  *mockConfigLoader
	tableLoader   *mockTableLoader
	clipboard     *mockClipboard
	watcher       *mockWatcher
	serverFactory *mockServerFactory
	stdout        *syncBuffer
	stderr        *syncBuffer
}

func newTestMocks() *testMocks {
	return &testMocks{
		configLoader:  &mockConfigLoader{},
		tableLoader:   &mockTableLoader{},
		clipboard:     &mockClipboard{},
		watcher:       &mockWatcher{},
		serverFactory: &mockServerFactory{},
		stdout:        &syncBuffer{},
		stderr:        &syncBuffer{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdin  io.Reader
	getenv func(string) string
	now    func() time.Time
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestStdin(s string) testEnvOption {
	return func(o *testEnvOptions) { o.stdin = strings.NewReader(s) }
}

func withTestConfig(cfg config.Config) testEnvOption {
	return func(o *testEnvOptions) {
		o.mocks.configLoader.LoadFunc = func() (config.Config, error) { return cfg, nil }
	}
}

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stdin:  strings.NewReader(""),
		getenv: func(string) string { return "" },
		now: func() time.Time {
			return time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)
		},
		mocks: newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	m := options.mocks
	env := &Env{
		Stdin:         options.stdin,
		Stdout:        m.stdout,
		Stderr:        m.stderr,
		Getenv:        options.getenv,
		Now:           options.now,
		ConfigLoader:  m.configLoader,
		TableLoader:   m.tableLoader,
		Clipboard:     m.clipboard,
		Watcher:       m.watcher,
		ServerFactory: m.serverFactory,
	}

	return env, m
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// writeTestFile creates a file with content in a temp dir and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// readTestFile returns the content of path, failing the test if unreadable.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// runCmd executes cmd with args and returns its error.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}
