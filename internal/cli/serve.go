package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/server"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	addr   string
	tables string
}

// ServeCmd creates the serve command.
// The env parameter provides injectable dependencies for testing.
func ServeCmd(env *Env) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the text operations as a JSON HTTP API",
		Long: `Serve the text operations as a JSON HTTP API.

Endpoints:
  POST /api/v1/sentences     {"text", "numbered"}
  POST /api/v1/contractions  {"text", "mode"}
  POST /api/v1/captions      {"text", "wpm", "clamp", "format"}
  GET  /healthz

Request bodies are limited by config 'max-input'. Each response carries a
request ID, taken from the X-Request-ID header or generated.`,
		Example: `  textkit serve
  textkit serve --addr 127.0.0.1:9000 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&opts.tables, "tables", "", "YAML pattern table overrides (default: config 'tables')")

	return cmd
}

// runServe runs the HTTP server until the command context is cancelled.
func runServe(cmd *cobra.Command, env *Env, opts serveOptions) error {
	cfg := loadConfig(env)

	// A configured default rate must itself be valid.
	rate, err := resolveRate(0, cfg.WPM, false)
	if err != nil {
		return fmt.Errorf("config %s: %w", config.KeyWPM, err)
	}

	eng, err := loadEngine(env, cfg, opts.tables)
	if err != nil {
		return err
	}

	srv := env.ServerFactory.NewServer(eng,
		server.WithDefaultRate(rate),
		server.WithMaxBody(cfg.MaxInputOrDefault()),
		server.WithLogger(env.logger()),
	)

	fmt.Fprintf(env.Stderr, "Serving on %s (Ctrl+C to stop)\n", opts.addr)
	return srv.Run(cmd.Context(), opts.addr)
}
