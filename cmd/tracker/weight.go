package tracker

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log and list weigh-ins",
}

var (
	weightValue   float64
	weightUnit    string
	weightContext string
	weightDate    string
	weightTime    string
	weightNotes   string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weigh-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(weightDate)
		if err != nil {
			return err
		}
		clock, err := parseClockOrNow(weightTime)
		if err != nil {
			return err
		}
		in := service.WeightInput{
			Date:    date,
			Time:    clock,
			Weight:  weightValue,
			Unit:    weightUnit,
			Context: weightContext,
			Notes:   weightNotes,
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			_, e, err := service.LogWeight(ctx, st, service.State{}, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f kg (%s) on %s %s id=%s\n", e.WeightKg, e.Context, model.FormatDay(e.Date), e.Time, e.ID)
			return nil
		})
	},
}

var (
	weightListDate  string
	weightListFrom  string
	weightListTo    string
	weightListLimit int
	weightListJSON  bool
)

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weigh-ins, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := listQuery(weightListDate, weightListFrom, weightListTo, weightListLimit)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			items, err := st.QueryWeight(ctx, q)
			if err != nil {
				return err
			}
			if weightListJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			printWeights(cmd, items)
			return nil
		})
	},
}

var weightTodayJSON bool

var weightTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's weigh-ins, latest weight and change from yesterday",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			items, err := st.QueryWeight(ctx, store.Query{Order: store.DateAsc})
			if err != nil {
				return err
			}
			today := now()
			todays := analytics.OnDay(items, today)
			latest, ok := analytics.LatestWeightChange(items, today)
			if weightTodayJSON {
				out := map[string]any{"date": model.FormatDay(today), "entries": todays}
				if ok {
					out["latest"] = latest
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries yet.")
				return nil
			}
			service.WriteLatestWeightText(cmd.OutOrStdout(), latest)
			if len(todays) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weigh-ins today.")
				return nil
			}
			printWeights(cmd, todays)
			return nil
		})
	},
}

func printWeights(cmd *cobra.Command, items []model.WeightEntry) {
	fmt.Fprintln(cmd.OutOrStdout(), "DATE\tTIME\tWEIGHT_KG\tCONTEXT\tNOTES")
	for _, e := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f\t%s\t%s\n", model.FormatDay(e.Date), e.Time, e.WeightKg, e.Context, e.Notes)
	}
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightTodayCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Body weight")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg|lb")
	weightAddCmd.Flags().StringVar(&weightContext, "context", string(model.ContextWakeUp), "Measurement context, e.g. \"Wake up\" or before-gym")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().StringVar(&weightTime, "time", "", "Time HH:MM (default now)")
	weightAddCmd.Flags().StringVar(&weightNotes, "notes", "", "Notes (max 200 characters)")
	_ = weightAddCmd.MarkFlagRequired("weight")

	weightListCmd.Flags().StringVar(&weightListDate, "date", "", "Single date YYYY-MM-DD")
	weightListCmd.Flags().StringVar(&weightListFrom, "from", "", "Start date YYYY-MM-DD")
	weightListCmd.Flags().StringVar(&weightListTo, "to", "", "End date YYYY-MM-DD")
	weightListCmd.Flags().IntVar(&weightListLimit, "limit", 0, "Max rows (0 = all)")
	weightListCmd.Flags().BoolVar(&weightListJSON, "json", false, "Output JSON")

	weightTodayCmd.Flags().BoolVar(&weightTodayJSON, "json", false, "Output JSON")
}
