package analytics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

type MacroTotals struct {
	Protein float64 `json:"protein" yaml:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs"`
	Fat     float64 `json:"fat" yaml:"fat"`
}

type Counts struct {
	Food   int `json:"food" yaml:"food"`
	Weight int `json:"weight" yaml:"weight"`
	Sleep  int `json:"sleep" yaml:"sleep"`
}

// Summary holds the headline statistics of a range. Averages are nil when
// the range has no entries of that kind.
type Summary struct {
	AvgWeightKg      *float64    `json:"avg_weight_kg" yaml:"avg_weight_kg"`
	AvgSleepHours    *float64    `json:"avg_sleep_hours" yaml:"avg_sleep_hours"`
	AvgDailyCalories *float64    `json:"avg_daily_calories" yaml:"avg_daily_calories"`
	Macros           MacroTotals `json:"macros" yaml:"macros"`
	DailyCalories    Series      `json:"daily_calories" yaml:"daily_calories"`
	Counts           Counts      `json:"counts" yaml:"counts"`
}

func Summarize(food []model.FoodEntry, weights []model.WeightEntry, sleeps []model.SleepEntry) Summary {
	s := Summary{
		DailyCalories: make(Series, 0),
		Counts:        Counts{Food: len(food), Weight: len(weights), Sleep: len(sleeps)},
	}
	if len(weights) > 0 {
		s.AvgWeightKg = meanOf(WeightSeries(weights).Values())
	}
	if len(sleeps) > 0 {
		s.AvgSleepHours = meanOf(SleepDurationSeries(sleeps).Values())
	}

	byDay := NutritionByDay(food)
	for _, d := range byDay.Days() {
		n, _ := byDay.Get(d)
		s.DailyCalories = append(s.DailyCalories, Point{Date: d, Value: n.Calories})
		s.Macros.Protein += n.Protein
		s.Macros.Carbs += n.Carbs
		s.Macros.Fat += n.Fat
	}
	if len(s.DailyCalories) > 0 {
		s.AvgDailyCalories = meanOf(s.DailyCalories.Values())
	}
	return s
}

func meanOf(values []float64) *float64 {
	m := stat.Mean(values, nil)
	return &m
}

// LatestWeight is the most recent reading by date and time. Change is the
// difference from the last reading on the day before AsOf, nil when that
// day has none.
type LatestWeight struct {
	Entry    model.WeightEntry `json:"entry" yaml:"entry"`
	AsOf     string            `json:"as_of" yaml:"as_of"`
	Previous *float64          `json:"previous_kg" yaml:"previous_kg"`
	Change   *float64          `json:"change_kg" yaml:"change_kg"`
}

// LatestWeightChange reports false when there are no weight entries.
func LatestWeightChange(weights []model.WeightEntry, asOf time.Time) (LatestWeight, bool) {
	if len(weights) == 0 {
		return LatestWeight{}, false
	}
	ordered := make([]model.WeightEntry, len(weights))
	copy(ordered, weights)
	SortByDateTime(ordered)

	asOf = model.Day(asOf)
	out := LatestWeight{Entry: ordered[len(ordered)-1], AsOf: model.FormatDay(asOf)}
	yesterday := asOf.AddDate(0, 0, -1)
	for i := len(ordered) - 1; i >= 0; i-- {
		if model.Day(ordered[i].Date).Equal(yesterday) {
			prev := ordered[i].WeightKg
			change := out.Entry.WeightKg - prev
			out.Previous, out.Change = &prev, &change
			break
		}
	}
	return out, true
}

// OnDay returns the readings dated d in time order.
func OnDay(weights []model.WeightEntry, d time.Time) []model.WeightEntry {
	out, _ := Window(weights, DateRange{Start: model.Day(d), End: model.Day(d)})
	return out
}
