package cmd

import (
	"fmt"

	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
	"github.com/spf13/cobra"
)

var (
	tokensFormat string
	tokensEval   string
)

var tokensCmd = &cobra.Command{
	Use:     "tokens [file|-]",
	Aliases: []string{"lex"},
	Short:   "Print the token stream of a source",
	Long: `Tokenizes a mote source and prints one row per token with its byte
offset and kind.

Examples:
  mote tokens fib.mote
  mote tokens --format plain -e 'f("a", 1.5);'
  mote tokens --format json < fib.mote`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "table", "output format (table, plain, json, yaml)")
	tokensCmd.Flags().StringVarP(&tokensEval, "eval", "e", "", "tokenize the given source instead of a file")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(tokensFormat, render.TokenFormats)
	if err != nil {
		return err
	}
	name, source, err := readSource(cmd, args, tokensEval)
	if err != nil {
		return err
	}

	svc, err := app.frontend()
	if err != nil {
		return err
	}
	outcome, err := svc.Tokenize(cmd.Context(), frontend.Request{Name: name, Source: source, Origin: history.OriginCLI})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return reject(cmd.ErrOrStderr(), name, source, frontend.Describe(outcome.Err))
	}

	out, err := render.Tokens(outcome.Tokens, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
