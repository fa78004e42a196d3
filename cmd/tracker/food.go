package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/photo"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log and list food entries",
}

var (
	foodItems    string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodMeal     string
	foodDate     string
	foodTime     string
	foodPhoto    string
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(foodDate)
		if err != nil {
			return err
		}
		clock, err := parseClockOrNow(foodTime)
		if err != nil {
			return err
		}
		in := service.FoodInput{
			Date:      date,
			Time:      clock,
			FoodItems: service.ParseFoodItems(foodItems),
			Calories:  foodCalories,
			ProteinG:  foodProtein,
			CarbsG:    foodCarbs,
			FatG:      foodFat,
			MealType:  foodMeal,
		}
		if strings.TrimSpace(foodPhoto) != "" {
			ref, err := photo.IngestFile(foodPhoto, settings.PhotoDir)
			if err != nil {
				return err
			}
			in.PhotoRef = ref
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			_, e, err := service.LogFood(ctx, st, service.State{}, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %s (%.0f kcal) id=%s\n", e.MealType, strings.Join(e.FoodItems, ", "), e.Calories, e.ID)
			return nil
		})
	},
}

var (
	foodListDate  string
	foodListFrom  string
	foodListTo    string
	foodListLimit int
	foodListJSON  bool
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := listQuery(foodListDate, foodListFrom, foodListTo, foodListLimit)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			items, err := st.QueryFood(ctx, q)
			if err != nil {
				return err
			}
			if foodListJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tTIME\tMEAL\tITEMS\tKCAL\tP\tC\tF\tPHOTO")
			for _, e := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					model.FormatDay(e.Date), e.Time, e.MealType, strings.Join(e.FoodItems, ", "),
					e.Calories, e.ProteinG, e.CarbsG, e.FatG, e.PhotoRef)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd)

	foodAddCmd.Flags().StringVar(&foodItems, "items", "", "Comma-separated food items, e.g. \"Oatmeal, Banana\"")
	foodAddCmd.Flags().Float64Var(&foodCalories, "calories", 0, "Calories (kcal)")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbohydrate grams")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "", "Meal type: Breakfast|Lunch|Dinner|Snack")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default today)")
	foodAddCmd.Flags().StringVar(&foodTime, "time", "", "Time HH:MM (default now)")
	foodAddCmd.Flags().StringVar(&foodPhoto, "photo", "", "Path to a JPEG or PNG photo of the meal")
	_ = foodAddCmd.MarkFlagRequired("items")
	_ = foodAddCmd.MarkFlagRequired("meal")

	foodListCmd.Flags().StringVar(&foodListDate, "date", "", "Single date YYYY-MM-DD")
	foodListCmd.Flags().StringVar(&foodListFrom, "from", "", "Start date YYYY-MM-DD")
	foodListCmd.Flags().StringVar(&foodListTo, "to", "", "End date YYYY-MM-DD")
	foodListCmd.Flags().IntVar(&foodListLimit, "limit", 0, "Max rows (0 = all)")
	foodListCmd.Flags().BoolVar(&foodListJSON, "json", false, "Output JSON")
}
