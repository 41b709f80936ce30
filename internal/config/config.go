package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Config keys.
const (
	KeyOutputDir = "output-dir"
	KeyWPM       = "wpm"
	KeyMaxInput  = "max-input"
	KeyTables    = "tables"
)

// Environment variable fallbacks.
const (
	EnvOutputDir = "TEXTKIT_OUTPUT_DIR"
	EnvWPM       = "TEXTKIT_WPM"
	EnvMaxInput  = "TEXTKIT_MAX_INPUT"
	EnvTables    = "TEXTKIT_TABLES"
)

// DefaultMaxInput bounds the size of a single input, in bytes.
const DefaultMaxInput int64 = 1 << 20

// keyOrder is the display order of keys for List and help text.
var keyOrder = []string{KeyOutputDir, KeyWPM, KeyMaxInput, KeyTables}

// EnvVars maps each config key to its environment variable fallback.
var EnvVars = map[string]string{
	KeyOutputDir: EnvOutputDir,
	KeyWPM:       EnvWPM,
	KeyMaxInput:  EnvMaxInput,
	KeyTables:    EnvTables,
}

// Config holds user configuration loaded from ~/.config/go-textkit/config.
// Zero numeric fields mean "not set".
type Config struct {
	OutputDir string
	WPM       int
	MaxInput  int64
	Tables    string
}

// Keys returns the supported config keys in display order.
func Keys() []string {
	return slices.Clone(keyOrder)
}

// IsKey reports whether key is a supported config key.
func IsKey(key string) bool {
	return slices.Contains(keyOrder, key)
}

// MaxInputOrDefault returns MaxInput, or DefaultMaxInput if unset.
func (c Config) MaxInputOrDefault() int64 {
	if c.MaxInput <= 0 {
		return DefaultMaxInput
	}
	return c.MaxInput
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-textkit.
func dir() (string, error) {
	return dirEnv(os.Getenv)
}

func dirEnv(getenv func(string) string) (string, error) {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-textkit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-textkit"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	return pathEnv(os.Getenv)
}

func pathEnv(getenv func(string) string) (string, error) {
	d, err := dirEnv(getenv)
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks.
// Returns an empty Config if the file doesn't exist (not an error).
// Malformed numeric values return ErrInvalidValue.
func Load() (Config, error) {
	return LoadEnv(os.Getenv)
}

// LoadEnv is Load with environment lookups going through getenv.
func LoadEnv(getenv func(string) string) (Config, error) {
	var cfg Config

	p, err := pathEnv(getenv)
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if data == nil {
		data = make(map[string]string)
	}

	// Environment variable fallback (only if not set in config).
	for _, key := range keyOrder {
		if data[key] == "" {
			data[key] = os.Getenv(getenv(EnvVars[key]))
		}
	}

	cfg.OutputDir = data[KeyOutputDir]
	cfg.Tables = data[KeyTables]

	if v := data[KeyWPM]; v != "" {
		n, err := parseWPM(v)
		if err != nil {
			return Config{}, err
		}
		cfg.WPM = n
	}
	if v := data[KeyMaxInput]; v != "" {
		n, err := parseMaxInput(v)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxInput = n
	}

	return cfg, nil
}

// Validate checks a value for the given key without touching the filesystem.
// The rate range itself is checked by callers; here wpm only has to be a
// positive integer.
func Validate(key, value string) error {
	switch key {
	case KeyWPM:
		_, err := parseWPM(value)
		return err
	case KeyMaxInput:
		_, err := parseMaxInput(value)
		return err
	case KeyOutputDir, KeyTables:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty: %w", key, ErrInvalidValue)
		}
		return nil
	default:
		return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(keyOrder, ", "), ErrUnknownKey)
	}
}

func parseWPM(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q: %w", KeyWPM, v, ErrInvalidValue)
	}
	return n, nil
}

func parseMaxInput(v string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of bytes, got %q: %w", KeyMaxInput, v, ErrInvalidValue)
	}
	return n, nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save validates and writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, _ := parseFile(p)
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = strings.TrimSpace(value)

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	p, err := path()
	if err != nil {
		return "", err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}

// ResolveOutputPath resolves the final output path using the following precedence:
//  1. If output is absolute, use it as-is
//  2. If output is relative and outputDir is set, join them
//  3. If output is empty, use defaultName in outputDir (or cwd if no outputDir)
func ResolveOutputPath(output, outputDir, defaultName string) string {
	if output != "" && filepath.IsAbs(output) {
		return filepath.Clean(output)
	}

	if output != "" {
		if outputDir != "" {
			return filepath.Clean(filepath.Join(outputDir, output))
		}
		return filepath.Clean(output)
	}

	if outputDir != "" {
		return filepath.Clean(filepath.Join(outputDir, defaultName))
	}
	return filepath.Clean(defaultName)
}

// EnsureOutputDir checks that d is a writable directory, creating it if
// missing. Used by "config set output-dir".
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("output-dir cannot be empty: %w", ErrInvalidValue)
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
				return fmt.Errorf("cannot create directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s: %w", d, ErrInvalidValue)
	}

	testFile := filepath.Join(d, ".go-textkit-write-test")
	f, err := os.Create(testFile) // #nosec G304 -- path is constructed from validated dir
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(testFile)
		return fmt.Errorf("directory is not writable: %w", err)
	}
	_ = os.Remove(testFile)

	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	return dir()
}
