package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-textkit/config.
Settings can also be provided via environment variables.

Supported settings:
  output-dir    Default directory for output files (env: TEXTKIT_OUTPUT_DIR)
  wpm           Default speaking rate for captions (env: TEXTKIT_WPM)
  max-input     Maximum input size in bytes (env: TEXTKIT_MAX_INPUT)
  tables        YAML pattern table overrides (env: TEXTKIT_TABLES)`,
		Example: `  textkit config set output-dir ~/Documents/textkit
  textkit config set wpm 140
  textkit config get wpm
  textkit config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

output-dir is created if it doesn't exist. wpm must be within the accepted
speaking-rate range. tables must be a loadable YAML file.`,
		Example: `  textkit config set output-dir ~/Documents/textkit
  textkit config set max-input 4194304
  textkit config set tables ~/.config/go-textkit/tables.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  textkit config get output-dir`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable fallbacks.`,
		Example: `  textkit config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if err := config.Validate(key, value); err != nil {
		return err
	}

	// Key-specific checks that need more than the value itself.
	switch key {
	case config.KeyOutputDir:
		value = config.ExpandPath(value)
		if err := config.EnsureOutputDir(value); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
	case config.KeyWPM:
		// Validate already guarantees a positive integer.
		wpm, _ := strconv.Atoi(strings.TrimSpace(value))
		if _, err := caption.ParseRate(wpm); err != nil {
			return fmt.Errorf("invalid wpm: %w", err)
		}
	case config.KeyTables:
		value = config.ExpandPath(value)
		if _, err := env.TableLoader.LoadFile(value); err != nil {
			return fmt.Errorf("invalid tables: %w", err)
		}
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !config.IsKey(key) {
		return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(config.Keys(), ", "), config.ErrUnknownKey)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}
	if value == "" {
		value = env.Getenv(config.EnvVars[key])
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
// Keys are printed in a fixed order.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	var lines []string
	for _, key := range config.Keys() {
		if v, ok := data[key]; ok {
			lines = append(lines, fmt.Sprintf("%s=%s", key, v))
			continue
		}
		if v := env.Getenv(config.EnvVars[key]); v != "" {
			lines = append(lines, fmt.Sprintf("%s=%s (from env)", key, v))
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys() {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	fmt.Fprintln(env.Stdout, strings.Join(lines, "\n"))
	return nil
}
