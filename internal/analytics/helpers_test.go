package analytics_test

import (
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

func day(s string) time.Time {
	d, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func clock(s string) model.Clock {
	c, err := model.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func weight(date, at string, kg float64) model.WeightEntry {
	return model.WeightEntry{Date: day(date), Time: clock(at), WeightKg: kg, Context: model.ContextWakeUp}
}

func foodOn(date string, calories, protein, carbs, fat float64) model.FoodEntry {
	return model.FoodEntry{
		Date:      day(date),
		Time:      clock("12:00"),
		FoodItems: []string{"meal"},
		Calories:  calories,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		MealType:  model.MealLunch,
	}
}

// dailyWeights returns one reading per day starting at start.
func dailyWeights(start string, values ...float64) []model.WeightEntry {
	d := day(start)
	out := make([]model.WeightEntry, len(values))
	for i, v := range values {
		out[i] = model.WeightEntry{Date: d.AddDate(0, 0, i), Time: clock("07:00"), WeightKg: v, Context: model.ContextWakeUp}
	}
	return out
}
