package cmd

import (
	"fmt"
	"runtime"

	"github.com/msto63/mote/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(w, version.Platform)
			return
		}
		fmt.Fprintf(w, "mote v%s\n", version.Platform)
		fmt.Fprintf(w, "  Language:   %s\n", version.Language)
		fmt.Fprintf(w, "  Front end:  %s\n", version.FrontEnd)
		fmt.Fprintf(w, "  Git Commit: %s\n", version.Commit)
		fmt.Fprintf(w, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
}
