package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/frontend/server"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
	coregrpc "github.com/msto63/mote/pkg/core/grpc"
	"github.com/spf13/cobra"
)

var (
	parseFormat string
	parseStats  bool
	parseEval   string
	parseRemote string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Print the syntax tree of a source",
	Long: `Parses a mote source and prints its syntax tree.

Without a file, or with "-", the source is read from stdin.

Formats:
  tree   - box drawing tree (default)
  sexpr  - one line S-expression
  json   - nested JSON objects
  yaml   - nested YAML mappings

Examples:
  mote parse fib.mote
  mote parse --format sexpr -e 'return 1 + 2 * 3;'
  cat fib.mote | mote parse --format json
  mote parse --remote 127.0.0.1:9300 fib.mote`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "tree", "output format (tree, sexpr, json, yaml)")
	parseCmd.Flags().BoolVar(&parseStats, "stats", false, "print tree statistics")
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse the given source instead of a file")
	parseCmd.Flags().StringVar(&parseRemote, "remote", "", "parse on the front end service at this address")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(parseFormat, render.TreeFormats)
	if err != nil {
		return err
	}
	name, source, err := readSource(cmd, args, parseEval)
	if err != nil {
		return err
	}

	if parseRemote != "" {
		return runRemoteParse(cmd, format, name, source)
	}

	svc, err := app.frontend()
	if err != nil {
		return err
	}
	outcome, err := svc.Parse(cmd.Context(), frontend.Request{Name: name, Source: source, Origin: history.OriginCLI})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return reject(cmd.ErrOrStderr(), name, source, frontend.Describe(outcome.Err))
	}

	out, err := render.AST(outcome.Root, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	if parseStats {
		fmt.Fprintln(cmd.OutOrStdout(), render.MutedStyle.Render(
			render.Stats(outcome.Stats, len(outcome.Tokens))+" in "+outcome.Duration.Round(time.Microsecond).String()))
	}
	return nil
}

func runRemoteParse(cmd *cobra.Command, format render.Format, name, source string) error {
	cc := coregrpc.DefaultClientConfig(parseRemote)
	cc.Logger = app.logger
	conn, err := coregrpc.Dial(cc)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cc.Timeout)
	defer cancel()

	resp, err := server.NewClient(conn).Parse(ctx, name, source)
	if err != nil {
		return err
	}
	if !resp.OK {
		return reject(cmd.ErrOrStderr(), name, source, resp.Error)
	}

	out, err := render.AST(resp.Root, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	if parseStats {
		fmt.Fprintf(cmd.OutOrStdout(), "%d tokens, %d nodes, depth %d (run %s)\n",
			resp.Stats["tokens"], resp.Stats["nodes"], resp.Stats["depth"], resp.RunID)
	}
	return nil
}
