package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	historyLimit    int
	historyFailures bool
	historyOrigin   string
	historyName     string
	historySince    time.Duration
	historyFormat   string
	pruneOlderThan  time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long: `Lists the tokenize and parse runs recorded in the history database,
newest first. Recording is enabled with history.enabled in the config.

Examples:
  mote history
  mote history --failures --limit 5
  mote history --origin grpc --since 1h
  mote history show 3f2a9c1e-...
  mote history stats
  mote history prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run including its source",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of runs (default: history.list_limit)")
	historyCmd.Flags().BoolVar(&historyFailures, "failures", false, "only list rejected sources")
	historyCmd.Flags().StringVar(&historyOrigin, "origin", "", "only list runs from cli, grpc or explore")
	historyCmd.Flags().StringVar(&historyName, "name", "", "only list runs for this source name")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only list runs younger than this")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "table", "output format (table, json, yaml)")

	historyPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "delete runs older than this")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(historyFormat, []render.Format{render.FormatTable, render.FormatJSON, render.FormatYAML})
	if err != nil {
		return err
	}
	store, err := app.openHistory()
	if err != nil {
		return err
	}

	filter := history.Filter{
		Origin:       history.Origin(historyOrigin),
		Name:         historyName,
		OnlyFailures: historyFailures,
		Limit:        historyLimit,
	}
	if filter.Limit <= 0 {
		filter.Limit = app.config.History.ListLimit
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	runs, err := store.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	out, err := render.History(runs, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := app.openHistory()
	if err != nil {
		return err
	}
	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprint(w, string(data))
	fmt.Fprintln(w, "source: |")
	fmt.Fprintln(w, indent(run.Source, "  "))
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := app.openHistory()
	if err != nil {
		return err
	}
	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.HistoryStats(stats))
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := app.openHistory()
	if err != nil {
		return err
	}
	n, err := store.Prune(cmd.Context(), pruneOlderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d runs older than %s\n", n, pruneOlderThan)
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return prefix + strings.Join(lines, "\n"+prefix)
}
