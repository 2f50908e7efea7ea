package main

import (
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shebang/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the formatter over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	defaults := server.DefaultConfig()
	serveCmd.Flags().Int("port", defaults.Port, "HTTP server port")
	serveCmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	serveCmd.Flags().Int("max-request-size", defaults.MaxRequestSize, "maximum request size in bytes")
	serveCmd.Flags().Int("concurrency", defaults.Concurrency, "maximum number of concurrent requests (0 = fasthttp default)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := server.DefaultConfig()
	var err error
	if cfg.Port, err = cmd.Flags().GetInt("port"); err != nil {
		return err
	}
	if cfg.ReadTimeout, err = cmd.Flags().GetDuration("read-timeout"); err != nil {
		return err
	}
	if cfg.WriteTimeout, err = cmd.Flags().GetDuration("write-timeout"); err != nil {
		return err
	}
	if cfg.MaxRequestSize, err = cmd.Flags().GetInt("max-request-size"); err != nil {
		return err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return err
	}

	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("Starting shebang HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
	)
	return server.Run(cmd.Context(), cfg, server.NewHandler(a.plugin, a.logger), a.logger)
}
