package analytics

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

const (
	MinForecastObservations = 30
	ForecastHorizon         = 14
)

// DailySample is one calendar day of a resampled series. Observed is false
// for days without any reading.
type DailySample struct {
	Date     time.Time
	Value    float64
	Observed bool
}

// ResampleDaily averages same-day readings and emits one sample per day from
// start through the last observed day. A zero start begins at the first
// observed day.
func ResampleDaily(weights []model.WeightEntry, start time.Time) []DailySample {
	byDay := NewDayMap[[]float64]()
	for _, w := range weights {
		vals, _ := byDay.Get(w.Date)
		byDay.Set(w.Date, append(vals, w.WeightKg))
	}
	if byDay.Len() == 0 {
		return []DailySample{}
	}
	days := byDay.Days()
	last := days[len(days)-1]
	if start.IsZero() || start.After(days[0]) {
		start = days[0]
	}
	start = model.Day(start)

	out := make([]DailySample, 0, int(last.Sub(start).Hours()/24)+1)
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		vals, ok := byDay.Get(d)
		if !ok {
			out = append(out, DailySample{Date: d})
			continue
		}
		out = append(out, DailySample{Date: d, Value: stat.Mean(vals, nil), Observed: true})
	}
	return out
}

// ForwardFill carries the most recent observed value into following gaps.
// Gaps before the first observation have nothing to carry and are dropped.
func ForwardFill(samples []DailySample) Series {
	out := make(Series, 0, len(samples))
	var (
		last float64
		seen bool
	)
	for _, s := range samples {
		if s.Observed {
			last, seen = s.Value, true
		}
		if !seen {
			continue
		}
		out = append(out, Point{Date: s.Date, Value: last})
	}
	return out
}

// HoltModel is additive-trend exponential smoothing without seasonality.
// Level and Trend are the state after the last observation.
type HoltModel struct {
	Alpha float64
	Beta  float64
	Level float64
	Trend float64
}

// Project returns the next h values after the fitted series.
func (m HoltModel) Project(h int) []float64 {
	out := make([]float64, h)
	for k := 1; k <= h; k++ {
		out[k-1] = m.Level + float64(k)*m.Trend
	}
	return out
}

func holtFilter(y []float64, alpha, beta float64) (level, trend, sse float64) {
	level, trend = y[0], y[1]-y[0]
	for t := 1; t < len(y); t++ {
		pred := level + trend
		e := y[t] - pred
		sse += e * e
		next := alpha*y[t] + (1-alpha)*pred
		trend = beta*(next-level) + (1-beta)*trend
		level = next
	}
	return level, trend, sse
}

func logistic(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// FitHolt chooses alpha and beta in (0, 1) minimising the one-step-ahead
// squared error. A constant series fits exactly and returns a flat model
// with zero smoothing parameters.
func FitHolt(y []float64) (m HoltModel, err error) {
	if len(y) < 2 {
		return HoltModel{}, fmt.Errorf("need at least 2 daily values, have %d", len(y))
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return HoltModel{}, fmt.Errorf("series contains non-finite value")
		}
	}
	if isConstant(y) {
		return HoltModel{Level: y[0]}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			m, err = HoltModel{}, fmt.Errorf("fit panicked: %v", r)
		}
	}()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			_, _, sse := holtFilter(y, logistic(x[0]), logistic(x[1]))
			return sse
		},
	}
	result, err := optimize.Minimize(problem, []float64{0, 0}, nil, &optimize.NelderMead{})
	if err != nil {
		return HoltModel{}, fmt.Errorf("minimize: %w", err)
	}
	alpha, beta := logistic(result.X[0]), logistic(result.X[1])
	level, trend, sse := holtFilter(y, alpha, beta)
	for _, v := range []float64{alpha, beta, level, trend, sse} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return HoltModel{}, fmt.Errorf("fit produced non-finite parameters")
		}
	}
	return HoltModel{Alpha: alpha, Beta: beta, Level: level, Trend: trend}, nil
}

func isConstant(y []float64) bool {
	for _, v := range y[1:] {
		if v != y[0] {
			return false
		}
	}
	return true
}

// Forecast pairs the fitted daily series with its projection.
type Forecast struct {
	Actual       Series  `json:"actual" yaml:"actual"`
	Forecast     Series  `json:"forecast" yaml:"forecast"`
	Alpha        float64 `json:"alpha" yaml:"alpha"`
	Beta         float64 `json:"beta" yaml:"beta"`
	Observations int     `json:"observations" yaml:"observations"`
}

// ForecastWeight projects ForecastHorizon daily weights past the last
// observed day. weights must already be restricted to the range whose first
// day is start. Fewer than MinForecastObservations readings is
// ErrInsufficientData; any fitting failure is ErrForecastUnavailable.
func ForecastWeight(weights []model.WeightEntry, start time.Time) (Forecast, error) {
	if len(weights) < MinForecastObservations {
		return Forecast{}, insufficient("forecast", MinForecastObservations, len(weights))
	}
	actual := ForwardFill(ResampleDaily(weights, start))
	m, err := FitHolt(actual.Values())
	if err != nil {
		return Forecast{}, forecastUnavailable(err.Error())
	}

	last := actual[len(actual)-1].Date
	projected := m.Project(ForecastHorizon)
	fc := make(Series, ForecastHorizon)
	for i, v := range projected {
		fc[i] = Point{Date: last.AddDate(0, 0, i+1), Value: v}
	}
	return Forecast{
		Actual:       actual,
		Forecast:     fc,
		Alpha:        m.Alpha,
		Beta:         m.Beta,
		Observations: len(weights),
	}, nil
}
