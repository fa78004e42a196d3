package tracker

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Log and list sleep",
}

var (
	sleepAt      string
	sleepWake    string
	sleepQuality int
	sleepDate    string
	sleepNotes   string
)

var sleepAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a night of sleep",
	Long:  "Log a night of sleep. A wake time at or before the sleep time is taken as the next morning.",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(sleepDate)
		if err != nil {
			return err
		}
		at, err := model.ParseClock(sleepAt)
		if err != nil {
			return fmt.Errorf("invalid --sleep: %w", err)
		}
		wake, err := model.ParseClock(sleepWake)
		if err != nil {
			return fmt.Errorf("invalid --wake: %w", err)
		}
		in := service.SleepInput{Date: date, SleepTime: at, WakeTime: wake, Quality: sleepQuality, Notes: sleepNotes}
		return withStore(func(ctx context.Context, st *store.Store) error {
			_, e, err := service.LogSleep(ctx, st, service.State{}, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f h of sleep (quality %d) on %s id=%s\n", e.DurationHours(), e.Quality, model.FormatDay(e.Date), e.ID)
			return nil
		})
	},
}

var (
	sleepListDate  string
	sleepListFrom  string
	sleepListTo    string
	sleepListLimit int
	sleepListJSON  bool
)

var sleepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sleep entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := listQuery(sleepListDate, sleepListFrom, sleepListTo, sleepListLimit)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			items, err := st.QuerySleep(ctx, q)
			if err != nil {
				return err
			}
			if sleepListJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tSLEEP\tWAKE\tHOURS\tQUALITY\tNOTES")
			for _, e := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f\t%d\t%s\n", model.FormatDay(e.Date), e.SleepTime, e.WakeTime, e.DurationHours(), e.Quality, e.Notes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sleepCmd)
	sleepCmd.AddCommand(sleepAddCmd, sleepListCmd)

	sleepAddCmd.Flags().StringVar(&sleepAt, "sleep", "", "Time fallen asleep HH:MM")
	sleepAddCmd.Flags().StringVar(&sleepWake, "wake", "", "Wake time HH:MM")
	sleepAddCmd.Flags().IntVar(&sleepQuality, "quality", 0, "Sleep quality 1-10")
	sleepAddCmd.Flags().StringVar(&sleepDate, "date", "", "Date YYYY-MM-DD (default today)")
	sleepAddCmd.Flags().StringVar(&sleepNotes, "notes", "", "Notes (max 200 characters)")
	_ = sleepAddCmd.MarkFlagRequired("sleep")
	_ = sleepAddCmd.MarkFlagRequired("wake")
	_ = sleepAddCmd.MarkFlagRequired("quality")

	sleepListCmd.Flags().StringVar(&sleepListDate, "date", "", "Single date YYYY-MM-DD")
	sleepListCmd.Flags().StringVar(&sleepListFrom, "from", "", "Start date YYYY-MM-DD")
	sleepListCmd.Flags().StringVar(&sleepListTo, "to", "", "End date YYYY-MM-DD")
	sleepListCmd.Flags().IntVar(&sleepListLimit, "limit", 0, "Max rows (0 = all)")
	sleepListCmd.Flags().BoolVar(&sleepListJSON, "json", false, "Output JSON")
}
