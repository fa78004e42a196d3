package tracker

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local tracker database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(*sql.DB) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tracker database at %s\n", settings.DBPath)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
