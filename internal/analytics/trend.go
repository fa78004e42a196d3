package analytics

import (
	"encoding/json"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

const DefaultWindow = 7

// RollingMean averages the last window observations ending at each
// position. Early positions use however many observations exist, so the
// first value is the first observation. A window <= 0 means DefaultWindow.
func RollingMean(values []float64, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = stat.Mean(values[lo:i+1], nil)
	}
	return out
}

type TrendPoint struct {
	Date    time.Time
	Value   float64
	Rolling float64
}

type trendPointDoc struct {
	Date    string  `json:"date" yaml:"date"`
	Value   float64 `json:"value" yaml:"value"`
	Rolling float64 `json:"rolling" yaml:"rolling"`
}

func (p TrendPoint) doc() trendPointDoc {
	return trendPointDoc{Date: model.FormatDay(p.Date), Value: p.Value, Rolling: p.Rolling}
}

func (p TrendPoint) MarshalJSON() ([]byte, error) { return json.Marshal(p.doc()) }

func (p TrendPoint) MarshalYAML() (any, error) { return p.doc(), nil }

type Trend struct {
	Window int          `json:"window" yaml:"window"`
	Weight []TrendPoint `json:"weight" yaml:"weight"`
	Sleep  []TrendPoint `json:"sleep" yaml:"sleep"`
}

// Trends computes rolling means for weight and sleep duration. Both inputs
// must already be windowed and ordered; empty inputs give empty lines.
func Trends(weights []model.WeightEntry, sleeps []model.SleepEntry, window int) Trend {
	if window <= 0 {
		window = DefaultWindow
	}
	return Trend{
		Window: window,
		Weight: trendLine(WeightSeries(weights), window),
		Sleep:  trendLine(SleepDurationSeries(sleeps), window),
	}
}

func trendLine(s Series, window int) []TrendPoint {
	rolling := RollingMean(s.Values(), window)
	out := make([]TrendPoint, len(s))
	for i, p := range s {
		out[i] = TrendPoint{Date: p.Date, Value: p.Value, Rolling: rolling[i]}
	}
	return out
}
