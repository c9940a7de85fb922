// Package cmd - serve command
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gym-cost/api"
	"gym-cost/core/pricing"
	"gym-cost/internal/config"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quotes over HTTP",
	Long: `Serve the quote API.

Endpoints:
  POST /quote     {"plan": "...", "features": [...], "members": N}
  GET  /catalog
  GET  /health
  GET  /version
  GET  /metrics   Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return api.NewServer(pricing.NewEngine(cat), Version, nil).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.hcl, .yaml, .yml, .json)")
}

