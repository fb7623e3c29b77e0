package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fifastats/internal/core"
	"github.com/JonMunkholm/fifastats/internal/web"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dataset reports over HTTP",
		Long: `Start an HTTP server exposing the reports.

Routes:
  GET /                  all datasets, HTML
  GET /datasets/{name}   one dataset, HTML
  GET /api/datasets      configured datasets, JSON
  GET /api/datasets/{name}
  GET /api/run           all datasets, JSON
  GET /healthz

Report builds are limited to SERVE_MAX_CONCURRENT at a time. On SIGINT or
SIGTERM the server stops accepting requests and waits up to
SERVER_SHUTDOWN_TIMEOUT for in-flight builds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr()
			}
			return a.serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default SERVER_HOST:SERVER_PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string) error {
	svc, err := core.NewService(a.cfg)
	if err != nil {
		return err
	}
	limiter := core.NewBuildLimiter(a.cfg.Serve.MaxConcurrent, a.cfg.Serve.MaxWait)
	server := web.NewServer(svc, limiter, a.cfg.Server)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server")
	case <-ctx.Done():
	}

	slog.Info("shutting down...", "active_builds", limiter.ActiveCount())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
		return errors.Wrap(err, "shutdown")
	}
	slog.Info("server stopped")
	return nil
}
