package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// Dashboard is every analytics view of one date range. Correlation and
// Forecast are nil when their thresholds are unmet; the matching notice
// then says why.
type Dashboard struct {
	From              string                       `json:"from" yaml:"from"`
	To                string                       `json:"to" yaml:"to"`
	Summary           analytics.Summary            `json:"summary" yaml:"summary"`
	Latest            *analytics.LatestWeight      `json:"latest_weight,omitempty" yaml:"latest_weight,omitempty"`
	Trend             analytics.Trend              `json:"trend" yaml:"trend"`
	Correlation       *analytics.CorrelationMatrix `json:"correlation,omitempty" yaml:"correlation,omitempty"`
	CorrelationNotice Notice                       `json:"correlation_notice" yaml:"correlation_notice"`
	Forecast          *analytics.Forecast          `json:"forecast,omitempty" yaml:"forecast,omitempty"`
	ForecastNotice    Notice                       `json:"forecast_notice" yaml:"forecast_notice"`
	Weekday           [7]analytics.WeekdayMean     `json:"weekday" yaml:"weekday"`
}

// BuildDashboard computes all views over state restricted to r. Only an
// invalid range is returned as an error; unmet thresholds become notices
// and are logged at info.
func BuildDashboard(state State, r analytics.DateRange, window int, asOf time.Time, logger *zap.Logger) (Dashboard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	in, err := state.InRange(r)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		From:    model.FormatDay(r.Start),
		To:      model.FormatDay(r.End),
		Summary: analytics.Summarize(in.Food, in.Weight, in.Sleep),
		Trend:   analytics.Trends(in.Weight, in.Sleep, window),
		Weekday: analytics.WeekdayMeanCalories(in.Food),
	}
	if latest, ok := analytics.LatestWeightChange(state.Weight, asOf); ok {
		d.Latest = &latest
	}

	if m, err := analytics.Correlation(in.Food, in.Weight); err != nil {
		notice, ok := NoticeFor(err)
		if !ok {
			return Dashboard{}, err
		}
		logger.Info("correlation skipped", zap.String("range", r.String()), zap.String("reason", notice.Reason), zap.Error(err))
		d.CorrelationNotice = notice
	} else {
		d.Correlation = &m
		d.CorrelationNotice = Notice{Available: true}
	}

	if fc, err := analytics.ForecastWeight(in.Weight, r.Start); err != nil {
		notice, ok := NoticeFor(err)
		if !ok {
			return Dashboard{}, err
		}
		logger.Info("forecast skipped", zap.String("range", r.String()), zap.String("reason", notice.Reason), zap.Error(err))
		d.ForecastNotice = notice
	} else {
		d.Forecast = &fc
		d.ForecastNotice = Notice{Available: true}
	}
	return d, nil
}
