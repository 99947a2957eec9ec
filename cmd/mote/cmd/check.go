package cmd

import (
	"fmt"
	"os"

	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
	"github.com/spf13/cobra"
)

var checkQuiet bool

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate one or more source files",
	Long: `Parses every given file and reports the ones that fail to lex or parse.
The command fails when at least one file is rejected.

Examples:
  mote check examples/*.mote
  mote check -q main.mote lib.mote`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "only report rejected files")
}

func runCheck(cmd *cobra.Command, args []string) error {
	svc, err := app.frontend()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		source := string(data)
		outcome, err := svc.Parse(cmd.Context(), frontend.Request{Name: path, Source: source, Origin: history.OriginCLI})
		if err != nil {
			return err
		}
		if !outcome.OK() {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), render.Diagnostic(path, source, frontend.Describe(outcome.Err)))
			continue
		}
		if !checkQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d nodes, depth %d)\n",
				path, render.OKStyle.Render("ok"), outcome.Stats.Nodes, outcome.Stats.Depth)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files rejected", failed, len(args))
	}
	return nil
}
