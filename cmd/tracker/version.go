package tracker

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/codesolver12/weight-loss-tracker/cmd/tracker.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "tracker %s (commit %s, built %s)\n", version, commit, date)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
