package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/observability"
	"github.com/nightwatch-ai/nightwatch/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the HTTP server exposing the analysis API.

Endpoints:
  GET  /healthz        - liveness probe
  GET  /readyz         - readiness probe (store reachable)
  GET  /metrics        - Prometheus metrics
  POST /api/analyze    - analyze a travel plan or safety question
  POST /api/incidents  - file an incident report
  GET  /api/incidents  - list stored incidents
  GET  /api/sos        - list SOS cases, most recent first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := observability.NewMetrics()

			app, err := newApp(cmd, metrics)
			if err != nil {
				return err
			}
			defer app.Close()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.cfg.HTTPAddr
			}

			srv := server.NewServer(addr, app.engine, app, app.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			app.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.logger.Error("http server shutdown error", "error", err)
			}
			app.logger.Info("shutdown complete")
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")

	return cmd
}
