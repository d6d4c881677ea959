package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/hotspot-map/internal/log"
	"github.com/ironsheep/hotspot-map/internal/server"
)

// NewServeCmd creates the serve command, which runs the MCP server on stdio.
func NewServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server on stdin/stdout",
		Long: `Run hotspot-map as an MCP (Model Context Protocol) server.

Requests are read as JSON-RPC 2.0 from stdin, one per line, and responses
are written to stdout. Logs go to stderr. Border datasets are cached for
the lifetime of the process.

Environment variables:
  ` + log.EnvLevel + `=debug    Enable debug logging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewLogger(cmd.ErrOrStderr(), opts.verbose)
			cfg, err := loadConfig(cmd, opts, logger)
			if err != nil {
				return err
			}

			logger.Debug("starting MCP server", "version", getVersion(), "borders", cfg.Borders.Path)
			return server.New(cfg, logger, getVersion()).Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
