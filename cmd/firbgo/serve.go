package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/firbgo/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fee calculator as a JSON HTTP API",
		Long: `Start the HTTP API. Settings come from FIRBGO_* environment variables or the
--env-file; flags override them.

Endpoints:
  GET  /healthz
  GET  /api/v1/rates
  GET  /api/v1/fees?propertyValue=...&state=...
  POST /api/v1/fees
  POST /api/v1/compare/states
  POST /api/v1/affordability
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			engine, err := a.loadEngine("")
			if err != nil {
				return err
			}

			srv := server.New(server.Options{
				Engine:    engine,
				CacheTTL:  a.cfg.CacheTTL,
				RateLimit: a.cfg.RateLimit,
				RateBurst: a.cfg.RateBurst,
				Logger:    a.log,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: FIRBGO_ADDR or :8080)")
	return cmd
}
