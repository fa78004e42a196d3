package tracker

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run read-only data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(context.Background(), sqldb)
			if err != nil {
				return err
			}
			if doctorJSON {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Integrity: %s\n", report.Integrity)
				fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (expected %d)\n", report.SchemaVersion, report.ExpectedVersion)
				fmt.Fprintf(cmd.OutOrStdout(), "Entries: food %d, weight %d, sleep %d\n", report.Counts.Food, report.Counts.Weight, report.Counts.Sleep)
				fmt.Fprintf(cmd.OutOrStdout(), "Malformed rows: %d\n", report.MalformedRows)
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicate entry rows: %d\n", report.DuplicateRows)
				for _, p := range report.Problems {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", p)
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output JSON")
}
