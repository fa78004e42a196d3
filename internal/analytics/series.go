// Package analytics turns logged entries into trend lines, a nutrition to
// weight-change correlation matrix, a short weight forecast and weekday
// aggregates. Every function is pure: callers load entries and render the
// results.
package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// DateRange is a closed interval of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: model.Day(start), End: model.Day(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, model.FormatDay(r.Start), model.FormatDay(r.End))
	}
	return nil
}

func (r DateRange) Contains(d time.Time) bool {
	d = model.Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days counts the calendar days in r, both ends included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return model.FormatDay(r.Start) + ".." + model.FormatDay(r.End)
}

// Dated is implemented by every entry kind.
type Dated interface {
	EntryDate() time.Time
	EntryClock() model.Clock
}

// Window returns the entries dated inside r, ascending by date then time of
// day. Entries with equal date and time keep their input order. The result
// is never nil.
func Window[T Dated](entries []T, r DateRange) ([]T, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.EntryDate()) {
			out = append(out, e)
		}
	}
	SortByDateTime(out)
	return out, nil
}

func SortByDateTime[T Dated](entries []T) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := model.Day(entries[i].EntryDate()), model.Day(entries[j].EntryDate())
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return entries[i].EntryClock() < entries[j].EntryClock()
	})
}

// Point is one (date, value) pair of a chart series.
type Point struct {
	Date  time.Time
	Value float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}{model.FormatDay(p.Date), p.Value})
}

func (p Point) MarshalYAML() (any, error) {
	return map[string]any{"date": model.FormatDay(p.Date), "value": p.Value}, nil
}

type Series []Point

func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// WeightSeries maps weight entries to points in their given order.
func WeightSeries(entries []model.WeightEntry) Series {
	out := make(Series, len(entries))
	for i, e := range entries {
		out[i] = Point{Date: model.Day(e.Date), Value: e.WeightKg}
	}
	return out
}

func SleepDurationSeries(entries []model.SleepEntry) Series {
	out := make(Series, len(entries))
	for i, e := range entries {
		out[i] = Point{Date: model.Day(e.Date), Value: e.DurationHours()}
	}
	return out
}
