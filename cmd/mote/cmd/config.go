package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/msto63/mote/pkg/core/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after defaults and environment expansion,
and the file it was loaded from.

Examples:
  mote config
  mote config --format yaml
  mote config schema`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the CUE schema the configuration is validated against",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.Schema())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSchemaCmd)

	configCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "output format (toml, yaml)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if app.configPath == "" {
		fmt.Fprintln(w, "# built-in defaults")
	} else {
		fmt.Fprintf(w, "# loaded from %s\n", app.configPath)
	}

	switch configFormat {
	case "toml":
		return toml.NewEncoder(w).Encode(app.config)
	case "yaml":
		data, err := yaml.Marshal(app.config)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", configFormat)
	}
}
