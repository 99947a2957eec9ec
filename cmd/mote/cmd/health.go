package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msto63/mote/internal/frontend/server"
	"github.com/msto63/mote/internal/render"
	coregrpc "github.com/msto63/mote/pkg/core/grpc"
	"github.com/spf13/cobra"
)

var (
	healthRemote  string
	healthTimeout time.Duration
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the local engine or a remote server",
	Long: `Runs the engine and history health checks locally, or asks a running
server through the grpc.health.v1 service.

Examples:
  mote health
  mote health --remote 127.0.0.1:9300`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().StringVar(&healthRemote, "remote", "", "check the server at this address")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "timeout for the checks")
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	if healthRemote != "" {
		return runRemoteHealth(ctx, cmd)
	}

	svc, err := app.frontend()
	if err != nil {
		return err
	}
	report := newHealthRegistry(svc).Check(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), render.HealthReport(report))
	if !report.Serving() {
		return errors.New("front end is unhealthy")
	}
	return nil
}

func runRemoteHealth(ctx context.Context, cmd *cobra.Command) error {
	cc := coregrpc.DefaultClientConfig(healthRemote)
	cc.Logger = app.logger
	conn, err := coregrpc.Dial(cc)
	if err != nil {
		return err
	}
	defer conn.Close()

	healthy := true
	for _, service := range []string{"", server.ServiceName} {
		serving, err := coregrpc.CheckHealth(ctx, conn, service)
		if err != nil {
			return fmt.Errorf("health check against %s failed: %w", healthRemote, err)
		}

		label := service
		if label == "" {
			label = "server"
		}
		status := render.OKStyle.Render("SERVING")
		if !serving {
			status = render.FailStyle.Render("NOT_SERVING")
			healthy = false
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", label, status)
	}

	if !healthy {
		return fmt.Errorf("%s is not serving", healthRemote)
	}
	return nil
}
