package cmd

import (
	"os"

	"github.com/msto63/mote/internal/tui/explorer"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [file]",
	Short: "Edit a source and watch its tree update",
	Long: `Starts the interactive explorer. The left panel edits the source, the
right panel shows the tree, the S-expression, the tokens or the JSON form
and switches to a caret diagnostic while the source does not parse.

Keys:
  Tab         switch output mode
  Ctrl+S      record the current source in the history
  PgUp/PgDn   scroll the output
  Esc         quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	svc, err := app.frontend()
	if err != nil {
		return err
	}

	cfg := explorer.Config{Service: svc}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		cfg.Name = args[0]
		cfg.Source = string(data)
	}
	return explorer.Run(cfg)
}
