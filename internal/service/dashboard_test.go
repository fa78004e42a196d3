package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

func seedState(t *testing.T, st service.Store, days int) service.State {
	t.Helper()
	ctx := context.Background()
	state := service.State{}
	start := mustDay(t, "2024-01-01")
	var err error
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		state, _, err = service.LogWeight(ctx, st, state, service.WeightInput{
			Date: d, Time: mustClock(t, "07:00"), Weight: 90 - 0.1*float64(i) + float64(i%3)*0.2, Context: "Wake up",
		})
		if err != nil {
			t.Fatalf("log weight: %v", err)
		}
		state, _, err = service.LogFood(ctx, st, state, service.FoodInput{
			Date: d, Time: mustClock(t, "12:00"), FoodItems: []string{"lunch"},
			Calories: 1800 + float64(i%5)*100, ProteinG: 100 + float64(i%4)*5, CarbsG: 200 + float64(i%3)*10, FatG: 60 + float64(i%2)*5, MealType: "Lunch",
		})
		if err != nil {
			t.Fatalf("log food: %v", err)
		}
		state, _, err = service.LogSleep(ctx, st, state, service.SleepInput{
			Date: d, SleepTime: mustClock(t, "23:00"), WakeTime: mustClock(t, "07:00"), Quality: 7,
		})
		if err != nil {
			t.Fatalf("log sleep: %v", err)
		}
	}
	return state
}

func TestBuildDashboardWithEnoughData(t *testing.T) {
	t.Parallel()
	_, st := newTestStore(t)
	state := seedState(t, st, 40)

	r, err := analytics.NewDateRange(mustDay(t, "2024-01-01"), mustDay(t, "2024-02-09"))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	d, err := service.BuildDashboard(state, r, 7, mustDay(t, "2024-02-09"), zap.NewNop())
	if err != nil {
		t.Fatalf("build dashboard: %v", err)
	}
	if d.Correlation == nil || !d.CorrelationNotice.Available {
		t.Fatalf("expected correlation, got notice %+v", d.CorrelationNotice)
	}
	if d.Forecast == nil || len(d.Forecast.Forecast) != analytics.ForecastHorizon {
		t.Fatalf("expected forecast with %d points, got notice %+v", analytics.ForecastHorizon, d.ForecastNotice)
	}
	if len(d.Trend.Weight) != 40 || len(d.Trend.Sleep) != 40 {
		t.Fatalf("unexpected trend lengths %d/%d", len(d.Trend.Weight), len(d.Trend.Sleep))
	}
	if d.Latest == nil || d.Latest.Change == nil {
		t.Fatalf("expected latest weight with change")
	}

	for _, format := range []service.ReportFormat{service.FormatText, service.FormatMarkdown, service.FormatHTML, service.FormatJSON, service.FormatYAML} {
		out, err := service.RenderDashboard(d, format)
		if err != nil {
			t.Fatalf("render %s: %v", format, err)
		}
		if len(out) == 0 {
			t.Fatalf("empty %s output", format)
		}
	}
}

func TestBuildDashboardReportsUnmetThresholdsAsNotices(t *testing.T) {
	t.Parallel()
	_, st := newTestStore(t)
	state := seedState(t, st, 3)

	core, logs := observer.New(zapcore.InfoLevel)
	r, _ := analytics.NewDateRange(mustDay(t, "2024-01-01"), mustDay(t, "2024-01-31"))
	d, err := service.BuildDashboard(state, r, 0, mustDay(t, "2024-01-03"), zap.New(core))
	if err != nil {
		t.Fatalf("build dashboard: %v", err)
	}
	if d.Forecast != nil || d.ForecastNotice.Available || d.ForecastNotice.Reason != service.ReasonInsufficientData {
		t.Fatalf("expected insufficient-data forecast notice, got %+v", d.ForecastNotice)
	}
	if d.Correlation == nil {
		t.Fatalf("expected correlation with two joined days")
	}
	if logs.FilterMessage("forecast skipped").Len() != 1 {
		t.Fatalf("expected forecast skip to be logged")
	}

	out, err := service.RenderDashboard(d, service.FormatJSON)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode dashboard json: %v", err)
	}
	notice, _ := doc["forecast_notice"].(map[string]any)
	if notice["available"] != false {
		t.Fatalf("expected available=false, got %v", notice)
	}

	text, err := service.RenderDashboard(d, service.FormatText)
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !bytes.Contains(text, []byte("Forecast not available")) {
		t.Fatalf("expected informational forecast line, got:\n%s", text)
	}
}

func TestBuildDashboardRejectsInvalidRange(t *testing.T) {
	t.Parallel()
	r := analytics.DateRange{Start: mustDay(t, "2024-02-01"), End: mustDay(t, "2024-01-01")}
	_, err := service.BuildDashboard(service.State{}, r, 7, r.End, nil)
	if !errors.Is(err, analytics.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}

func TestRenderDashboardHTMLIsSanitized(t *testing.T) {
	t.Parallel()
	d := service.Dashboard{From: "2024-01-01", To: "<script>alert(1)</script>"}
	d.Weekday = analytics.WeekdayMeanCalories(nil)
	out, err := service.RenderDashboard(d, service.FormatHTML)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected script tag to be stripped:\n%s", out)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Fatalf("expected markdown tables rendered as html")
	}
}
