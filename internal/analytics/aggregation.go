package analytics

import (
	"encoding/json"
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// Weekdays lists the aggregation slots, Monday first.
var Weekdays = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayMean is one weekday slot. MeanCalories is nil when no entry fell on
// that weekday.
type WeekdayMean struct {
	Weekday      time.Weekday
	MeanCalories *float64
	Entries      int
}

type weekdayMeanDoc struct {
	Weekday      string   `json:"weekday" yaml:"weekday"`
	MeanCalories *float64 `json:"mean_calories" yaml:"mean_calories"`
	Entries      int      `json:"entries" yaml:"entries"`
}

func (w WeekdayMean) doc() weekdayMeanDoc {
	return weekdayMeanDoc{Weekday: w.Weekday.String(), MeanCalories: w.MeanCalories, Entries: w.Entries}
}

func (w WeekdayMean) MarshalJSON() ([]byte, error) { return json.Marshal(w.doc()) }

func (w WeekdayMean) MarshalYAML() (any, error) { return w.doc(), nil }

func weekdaySlot(d time.Weekday) int { return (int(d) + 6) % 7 }

// WeekdayMeanCalories averages calories per food entry for each weekday.
func WeekdayMeanCalories(food []model.FoodEntry) [7]WeekdayMean {
	var (
		sums   [7]float64
		counts [7]int
	)
	for _, e := range food {
		slot := weekdaySlot(e.Date.Weekday())
		sums[slot] += e.Calories
		counts[slot]++
	}

	var out [7]WeekdayMean
	for i, wd := range Weekdays {
		out[i] = WeekdayMean{Weekday: wd, Entries: counts[i]}
		if counts[i] > 0 {
			mean := sums[i] / float64(counts[i])
			out[i].MeanCalories = &mean
		}
	}
	return out
}
