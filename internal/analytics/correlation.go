package analytics

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// DayMap is a mapping keyed by calendar day that iterates in ascending date
// order.
type DayMap[V any] struct {
	days   []time.Time
	values map[string]V
}

func NewDayMap[V any]() *DayMap[V] {
	return &DayMap[V]{values: make(map[string]V)}
}

func (m *DayMap[V]) Set(d time.Time, v V) {
	d = model.Day(d)
	key := model.FormatDay(d)
	if _, ok := m.values[key]; !ok {
		i := sort.Search(len(m.days), func(i int) bool { return !m.days[i].Before(d) })
		m.days = append(m.days, time.Time{})
		copy(m.days[i+1:], m.days[i:])
		m.days[i] = d
	}
	m.values[key] = v
}

func (m *DayMap[V]) Get(d time.Time) (V, bool) {
	v, ok := m.values[model.FormatDay(d)]
	return v, ok
}

func (m *DayMap[V]) Days() []time.Time {
	out := make([]time.Time, len(m.days))
	copy(out, m.days)
	return out
}

func (m *DayMap[V]) Len() int { return len(m.days) }

// DailyNutrition is the sum of one day's food entries.
type DailyNutrition struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Entries  int     `json:"entries" yaml:"entries"`
}

func NutritionByDay(food []model.FoodEntry) *DayMap[DailyNutrition] {
	m := NewDayMap[DailyNutrition]()
	for _, e := range food {
		n, _ := m.Get(e.Date)
		n.Calories += e.Calories
		n.Protein += e.ProteinG
		n.Carbs += e.CarbsG
		n.Fat += e.FatG
		n.Entries++
		m.Set(e.Date, n)
	}
	return m
}

// WeightDeltas computes weight[i] - weight[i-1] over the entries ordered by
// date and time and attributes each delta to the day of entry i. The first
// entry has no delta. Several deltas on one day are summed, which equals the
// day's last reading minus the reading before the day's first one.
func WeightDeltas(weights []model.WeightEntry) *DayMap[float64] {
	ordered := make([]model.WeightEntry, len(weights))
	copy(ordered, weights)
	SortByDateTime(ordered)

	m := NewDayMap[float64]()
	for i := 1; i < len(ordered); i++ {
		d, _ := m.Get(ordered[i].Date)
		m.Set(ordered[i].Date, d+ordered[i].WeightKg-ordered[i-1].WeightKg)
	}
	return m
}

// Joined is one row of an inner join on calendar day.
type Joined[L, R any] struct {
	Date  time.Time
	Left  L
	Right R
}

// InnerJoin keeps only days present in both maps, ascending by date.
func InnerJoin[L, R any](left *DayMap[L], right *DayMap[R]) []Joined[L, R] {
	out := make([]Joined[L, R], 0)
	for _, d := range left.days {
		r, ok := right.Get(d)
		if !ok {
			continue
		}
		l, _ := left.Get(d)
		out = append(out, Joined[L, R]{Date: d, Left: l, Right: r})
	}
	return out
}

const MinCorrelationRows = 2

var CorrelationLabels = []string{"calories", "protein", "carbs", "fat", "weight_change"}

// CorrelationMatrix holds pairwise Pearson coefficients in CorrelationLabels
// order. Cells undefined because a column has zero variance are NaN.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
	Rows   int
}

func (m CorrelationMatrix) At(row, col string) (float64, bool) {
	i, j := labelIndex(m.Labels, row), labelIndex(m.Labels, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func labelIndex(labels []string, name string) int {
	for i, l := range labels {
		if l == name {
			return i
		}
	}
	return -1
}

type correlationDoc struct {
	Labels []string     `json:"labels" yaml:"labels"`
	Rows   int          `json:"rows" yaml:"rows"`
	Matrix [][]*float64 `json:"matrix" yaml:"matrix"`
}

func (m CorrelationMatrix) doc() correlationDoc {
	cells := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		cells[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			v := v
			cells[i][j] = &v
		}
	}
	return correlationDoc{Labels: m.Labels, Rows: m.Rows, Matrix: cells}
}

// MarshalJSON writes undefined cells as null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) { return json.Marshal(m.doc()) }

func (m CorrelationMatrix) MarshalYAML() (any, error) { return m.doc(), nil }

// Correlation sums nutrition per day, joins it to the day's weight change
// and correlates the five columns. Fewer than two joined days is
// ErrInsufficientData.
func Correlation(food []model.FoodEntry, weights []model.WeightEntry) (CorrelationMatrix, error) {
	rows := InnerJoin(NutritionByDay(food), WeightDeltas(weights))
	if len(rows) < MinCorrelationRows {
		return CorrelationMatrix{}, insufficient("correlation", MinCorrelationRows, len(rows))
	}

	cols := make([][]float64, len(CorrelationLabels))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
	}
	for r, row := range rows {
		cols[0][r] = row.Left.Calories
		cols[1][r] = row.Left.Protein
		cols[2][r] = row.Left.Carbs
		cols[3][r] = row.Left.Fat
		cols[4][r] = row.Right
	}

	n := len(cols)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		values[i][i] = 1
		for j := i + 1; j < n; j++ {
			c := stat.Correlation(cols[i], cols[j], nil)
			if math.IsInf(c, 0) {
				c = math.NaN()
			}
			values[i][j], values[j][i] = c, c
		}
	}

	labels := make([]string, n)
	copy(labels, CorrelationLabels)
	return CorrelationMatrix{Labels: labels, Values: values, Rows: len(rows)}, nil
}
