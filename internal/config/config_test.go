package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

// Notes:
// - White-box testing (package config) to reach parseFile and writeFile.
// - Uses t.TempDir() + t.Setenv("XDG_CONFIG_HOME") for I/O isolation.
// - Tests using t.Setenv are NOT parallel (incompatible with t.Parallel).
// - Pure functions (ResolveOutputPath, ExpandPath, Validate) use t.Parallel().
//
// Coverage gaps (intentional):
// - os.UserHomeDir() failures in dir(), ExpandPath()
// - Write errors in writeFile() (disk full, permission denied mid-write)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// isolate points the config directory at a temp dir and clears env fallbacks.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, env := range []string{EnvOutputDir, EnvWPM, EnvMaxInput, EnvTables} {
		t.Setenv(env, "")
	}
	return tmpDir
}

// writeConfigFile creates a config file in the given directory.
func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "go-textkit")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Pure function for output path resolution
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		output      string
		outputDir   string
		defaultName string
		want        string
	}{
		{name: "absolute path ignores outputDir", output: "/abs/file.txt", outputDir: "/some/dir", defaultName: "d.txt", want: "/abs/file.txt"},
		{name: "relative path joined with outputDir", output: "sub/file.txt", outputDir: "/base", defaultName: "d.txt", want: "/base/sub/file.txt"},
		{name: "relative path without outputDir", output: "file.txt", defaultName: "d.txt", want: "file.txt"},
		{name: "default name in outputDir", outputDir: "/base", defaultName: "notes.sentences.txt", want: "/base/notes.sentences.txt"},
		{name: "default name in cwd", defaultName: "notes.srt", want: "notes.srt"},
		{name: "cleans redundant elements", output: "./a/../b.txt", outputDir: "/base/", defaultName: "d.txt", want: "/base/b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveOutputPath(tt.output, tt.outputDir, tt.defaultName)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("ResolveOutputPath(%q, %q, %q) = %q, want %q",
					tt.output, tt.outputDir, tt.defaultName, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExpandPath - Pure function for ~ expansion
// ---------------------------------------------------------------------------

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot get home dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "expands tilde prefix", path: "~/Documents/file.txt", want: filepath.Join(home, "Documents/file.txt")},
		{name: "tilde alone expands to home", path: "~", want: home},
		{name: "no expansion for absolute path", path: "/absolute/path", want: "/absolute/path"},
		{name: "no expansion for tilde in middle", path: "/path/~/file", want: "/path/~/file"},
		{name: "no expansion for tilde user", path: "~bob/x", want: "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Per-key value checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{key: KeyWPM, value: "150"},
		{key: KeyWPM, value: " 120 "},
		{key: KeyWPM, value: "0", wantErr: ErrInvalidValue},
		{key: KeyWPM, value: "fast", wantErr: ErrInvalidValue},
		{key: KeyMaxInput, value: "4096"},
		{key: KeyMaxInput, value: "-1", wantErr: ErrInvalidValue},
		{key: KeyOutputDir, value: "~/out"},
		{key: KeyOutputDir, value: "  ", wantErr: ErrInvalidValue},
		{key: KeyTables, value: "tables.yaml"},
		{key: "colour", value: "blue", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.key, tt.value)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate(%q, %q) = %v, want nil", tt.key, tt.value, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q, %q) = %v, want %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	want := []string{KeyOutputDir, KeyWPM, KeyMaxInput, KeyTables}
	if got := Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !IsKey(KeyWPM) || IsKey("nope") {
		t.Error("IsKey misreports")
	}
}

// ---------------------------------------------------------------------------
// TestLoad - Config loading with file and env precedence
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	// NO t.Parallel() - uses t.Setenv

	t.Run("returns empty config when file missing", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg != (Config{}) {
			t.Errorf("Load() = %+v, want zero Config", cfg)
		}
		if cfg.MaxInputOrDefault() != DefaultMaxInput {
			t.Errorf("MaxInputOrDefault() = %d, want %d", cfg.MaxInputOrDefault(), DefaultMaxInput)
		}
	})

	t.Run("reads all keys from file", func(t *testing.T) {
		dir := isolate(t)
		writeConfigFile(t, dir, "# textkit\noutput-dir=/from/file\nwpm=120\nmax-input=2048\ntables=/t.yaml\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := Config{OutputDir: "/from/file", WPM: 120, MaxInput: 2048, Tables: "/t.yaml"}
		if cfg != want {
			t.Errorf("Load() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("falls back to env vars", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvOutputDir, "/from/env")
		t.Setenv(EnvWPM, "180")
		writeConfigFile(t, dir, "other-key=other-value\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputDir != "/from/env" || cfg.WPM != 180 {
			t.Errorf("Load() = %+v", cfg)
		}
	})

	t.Run("file takes precedence over env var", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvWPM, "180")
		writeConfigFile(t, dir, "wpm=110\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.WPM != 110 {
			t.Errorf("WPM = %d, want 110 (file should take precedence)", cfg.WPM)
		}
	})

	t.Run("rejects malformed number", func(t *testing.T) {
		dir := isolate(t)
		writeConfigFile(t, dir, "max-input=lots\n")

		if _, err := Load(); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Load() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("returns error for invalid config syntax", func(t *testing.T) {
		dir := isolate(t)
		writeConfigFile(t, dir, "invalid-line-no-equals\n")

		if _, err := Load(); err == nil {
			t.Error("Load() = nil, want error for invalid syntax")
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, "wpm=110\n")
	vars := map[string]string{
		"XDG_CONFIG_HOME": dir,
		EnvOutputDir:      "/from/getenv",
		EnvWPM:            "180",
	}

	cfg, err := LoadEnv(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	want := Config{OutputDir: "/from/getenv", WPM: 110}
	if cfg != want {
		t.Errorf("LoadEnv() = %+v, want %+v", cfg, want)
	}
}

func TestEnvVarsCoverEveryKey(t *testing.T) {
	t.Parallel()

	for _, key := range Keys() {
		if EnvVars[key] == "" {
			t.Errorf("EnvVars[%q] is empty", key)
		}
	}
	if len(EnvVars) != len(Keys()) {
		t.Errorf("len(EnvVars) = %d, want %d", len(EnvVars), len(Keys()))
	}
}

// ---------------------------------------------------------------------------
// TestSave / TestGet / TestList - Config persistence
// ---------------------------------------------------------------------------

func TestSave(t *testing.T) {
	// NO t.Parallel() - uses t.Setenv

	t.Run("creates config file and preserves keys", func(t *testing.T) {
		isolate(t)

		if err := Save(KeyWPM, "130"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := Save(KeyOutputDir, "/out"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.WPM != 130 || cfg.OutputDir != "/out" {
			t.Errorf("Load() = %+v", cfg)
		}
	})

	t.Run("writes keys sorted", func(t *testing.T) {
		dir := isolate(t)

		for _, kv := range [][2]string{{KeyWPM, "150"}, {KeyMaxInput, "10"}, {KeyOutputDir, "/o"}} {
			if err := Save(kv[0], kv[1]); err != nil {
				t.Fatalf("Save(%q) error = %v", kv[0], err)
			}
		}
		data, err := os.ReadFile(filepath.Join(dir, "go-textkit", "config"))
		if err != nil {
			t.Fatal(err)
		}
		want := "max-input=10\noutput-dir=/o\nwpm=150\n"
		if string(data) != want {
			t.Errorf("config file = %q, want %q", data, want)
		}
	})

	t.Run("rejects invalid value without writing", func(t *testing.T) {
		dir := isolate(t)

		if err := Save(KeyWPM, "zero"); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Save() error = %v, want ErrInvalidValue", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "go-textkit", "config")); !os.IsNotExist(err) {
			t.Error("config file written despite invalid value")
		}
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		isolate(t)

		if err := Save("colour", "blue"); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("Save() error = %v, want ErrUnknownKey", err)
		}
	})
}

func TestGet(t *testing.T) {
	// NO t.Parallel() - uses t.Setenv

	dir := isolate(t)

	got, err := Get(KeyWPM)
	if err != nil || got != "" {
		t.Errorf("Get() on missing file = %q, %v; want empty, nil", got, err)
	}

	writeConfigFile(t, dir, "wpm=140\n")
	got, err = Get(KeyWPM)
	if err != nil || got != "140" {
		t.Errorf("Get() = %q, %v; want %q, nil", got, err, "140")
	}
}

func TestList(t *testing.T) {
	// NO t.Parallel() - uses t.Setenv

	dir := isolate(t)

	got, err := List()
	if err != nil || len(got) != 0 {
		t.Errorf("List() on missing file = %v, %v; want empty, nil", got, err)
	}

	writeConfigFile(t, dir, "wpm=140\ntables=/t.yaml\n")
	got, err = List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[KeyTables] != "/t.yaml" {
		t.Errorf("List() = %v", got)
	}
}

// ---------------------------------------------------------------------------
// TestEnsureOutputDir - Directory checks
// ---------------------------------------------------------------------------

func TestEnsureOutputDir(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()
		d := filepath.Join(t.TempDir(), "a", "b")
		if err := EnsureOutputDir(d); err != nil {
			t.Fatalf("EnsureOutputDir() error = %v", err)
		}
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("directory not created: %v", err)
		}
	})

	t.Run("rejects file", func(t *testing.T) {
		t.Parallel()
		f := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(f, nil, 0644); err != nil {
			t.Fatal(err)
		}
		if err := EnsureOutputDir(f); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("EnsureOutputDir(file) = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		t.Parallel()
		if err := EnsureOutputDir(""); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("EnsureOutputDir(\"\") = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("leaves no probe file", func(t *testing.T) {
		t.Parallel()
		d := t.TempDir()
		if err := EnsureOutputDir(d); err != nil {
			t.Fatal(err)
		}
		entries, _ := os.ReadDir(d)
		if len(entries) != 0 {
			t.Errorf("probe file left behind: %v", entries)
		}
	})

	t.Run("rejects read-only directory", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits not enforced")
		}
		d := t.TempDir()
		if err := os.Chmod(d, 0500); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chmod(d, 0750) })
		if err := EnsureOutputDir(d); err == nil || !strings.Contains(err.Error(), "not writable") {
			t.Errorf("EnsureOutputDir(read-only) = %v, want not writable", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseFile - key=value syntax
// ---------------------------------------------------------------------------

func TestParseFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "config")
	content := "# comment\n\n  wpm = 150  \ntables=a=b.yaml\n"
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := parseFile(p)
	if err != nil {
		t.Fatalf("parseFile() error = %v", err)
	}
	if got["wpm"] != "150" || got["tables"] != "a=b.yaml" || len(got) != 2 {
		t.Errorf("parseFile() = %v", got)
	}
}

func TestDir(t *testing.T) {
	// NO t.Parallel() - uses t.Setenv
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/xdg", "go-textkit") {
		t.Errorf("Dir() = %q", got)
	}
}
