// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     cmd
// Description: serve command running the gRPC front end service
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/frontend/server"
	coregrpc "github.com/msto63/mote/pkg/core/grpc"
	"github.com/msto63/mote/pkg/core/health"
	"github.com/msto63/mote/pkg/core/logging"
	"github.com/msto63/mote/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	serveAddr           string
	serveHealthInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC front end service",
	Long: `Starts the mote.v1.FrontEnd gRPC service together with the standard
grpc.health.v1 health service.

The listen address comes from the [server] section of the config unless
--addr is given. The health status follows the engine and history checks.

Examples:
  mote serve
  mote serve --addr 0.0.0.0:9300`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.host:server.port)")
	serveCmd.Flags().DurationVar(&serveHealthInterval, "health-interval", 15*time.Second, "interval between health checks")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := serveAddr
	if addr == "" {
		addr = app.config.ServerAddress()
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return serve(ctx, listener)
}

// serve runs the service on listener until ctx is done
func serve(ctx context.Context, listener net.Listener) error {
	svc, err := app.frontend()
	if err != nil {
		listener.Close()
		return err
	}

	sc := coregrpc.DefaultServerConfig()
	sc.RequestTimeout = app.config.Server.Timeout.Duration
	sc.MaxRecvMsgSize = app.config.Server.MaxMessageSize
	sc.Logger = app.logger
	srv := coregrpc.NewServer(sc)
	server.RegisterFrontEndServer(srv.GRPCServer(), server.New(svc, app.logger))

	logger := logging.Wrap(app.logger, "serve")
	registry := newHealthRegistry(svc)
	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		registry.Monitor(monitorCtx, serveHealthInterval, func(report *health.Report) {
			srv.SetServing("", report.Serving())
			srv.SetServing(server.ServiceName, report.Serving())
			if !report.Serving() {
				logger.Warn("front end unhealthy", "report", report.String())
			}
		})
	}()
	defer func() {
		cancelMonitor()
		<-monitorDone
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	logger.Info("front end service started",
		"address", listener.Addr().String(),
		"version", version.FrontEnd,
		"history", svc.History() != nil)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down front end service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.StopWithTimeout(shutdownCtx)
	return <-errCh
}

func newHealthRegistry(svc *frontend.Service) *health.Registry {
	registry := health.NewRegistry("mote", version.FrontEnd)
	for _, check := range svc.HealthChecks() {
		registry.Register(check)
	}
	return registry
}
