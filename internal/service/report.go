package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

type ReportFormat string

const (
	FormatText     ReportFormat = "text"
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
	FormatJSON     ReportFormat = "json"
	FormatYAML     ReportFormat = "yaml"
)

func ParseReportFormat(value string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q (use text|markdown|html|json|yaml)", value)
	}
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, v any, format ReportFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a data encoding", format)
	}
}

func WriteTrendText(w io.Writer, t analytics.Trend) {
	fmt.Fprintf(w, "Rolling window: %d observations\n", t.Window)
	writeTrendLine(w, "Weight (kg)", t.Weight)
	writeTrendLine(w, "Sleep (h)", t.Sleep)
}

func writeTrendLine(w io.Writer, name string, points []analytics.TrendPoint) {
	if len(points) == 0 {
		fmt.Fprintf(w, "%s: no entries\n", name)
		return
	}
	rolling := make([]float64, len(points))
	for i, p := range points {
		rolling[i] = p.Rolling
	}
	fmt.Fprintf(w, "%s trend: %s\n", name, sparkline(rolling))
	fmt.Fprintln(w, "date\tvalue\trolling")
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", model.FormatDay(p.Date), p.Value, p.Rolling)
	}
}

func WriteCorrelationText(w io.Writer, m analytics.CorrelationMatrix) {
	fmt.Fprintf(w, "Correlation over %d days\n", m.Rows)
	fmt.Fprint(w, "\t"+strings.Join(m.Labels, "\t")+"\n")
	for i, row := range m.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCoefficient(v)
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Labels[i], strings.Join(cells, "\t"))
	}
}

func formatCoefficient(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func WriteForecastText(w io.Writer, fc analytics.Forecast) {
	fmt.Fprintf(w, "Forecast from %d readings (alpha=%.3f beta=%.3f)\n", fc.Observations, fc.Alpha, fc.Beta)
	fmt.Fprintf(w, "Actual:   %s\n", sparkline(fc.Actual.Values()))
	fmt.Fprintf(w, "Forecast: %s\n", sparkline(fc.Forecast.Values()))
	fmt.Fprintln(w, "date\tforecast_kg")
	for _, p := range fc.Forecast {
		fmt.Fprintf(w, "%s\t%.2f\n", model.FormatDay(p.Date), p.Value)
	}
}

func WriteWeekdayText(w io.Writer, slots [7]analytics.WeekdayMean) {
	maxMean := 0.0
	for _, s := range slots {
		if s.MeanCalories != nil {
			maxMean = math.Max(maxMean, *s.MeanCalories)
		}
	}
	fmt.Fprintln(w, "weekday\tmean_kcal\tentries")
	for _, s := range slots {
		if s.MeanCalories == nil {
			fmt.Fprintf(w, "%s\t-\t0\n", s.Weekday)
			continue
		}
		fmt.Fprintf(w, "%s\t%.0f\t%d\t%s\n", s.Weekday, *s.MeanCalories, s.Entries, horizontalBar(*s.MeanCalories, maxMean, 30))
	}
}

func WriteSummaryText(w io.Writer, s analytics.Summary) {
	fmt.Fprintf(w, "Entries: food=%d weight=%d sleep=%d\n", s.Counts.Food, s.Counts.Weight, s.Counts.Sleep)
	fmt.Fprintf(w, "Average weight: %s kg\n", formatOptional(s.AvgWeightKg, 1))
	fmt.Fprintf(w, "Average sleep: %s h\n", formatOptional(s.AvgSleepHours, 1))
	fmt.Fprintf(w, "Average daily calories: %s kcal\n", formatOptional(s.AvgDailyCalories, 0))
	fmt.Fprintf(w, "Macros: protein=%.1fg carbs=%.1fg fat=%.1fg\n", s.Macros.Protein, s.Macros.Carbs, s.Macros.Fat)
	if len(s.DailyCalories) > 0 {
		fmt.Fprintf(w, "Daily calories: %s\n", sparkline(s.DailyCalories.Values()))
	}
}

func WriteLatestWeightText(w io.Writer, l analytics.LatestWeight) {
	fmt.Fprintf(w, "Latest weight: %.1f kg (%s %s, %s)\n", l.Entry.WeightKg, model.FormatDay(l.Entry.Date), l.Entry.Time, l.Entry.Context)
	if l.Change == nil {
		fmt.Fprintln(w, "Change from yesterday: no reading yesterday")
		return
	}
	fmt.Fprintf(w, "Change from yesterday: %+.1f kg\n", *l.Change)
}

func WriteNoticeText(w io.Writer, view string, n Notice) {
	fmt.Fprintf(w, "%s not available: %s\n", view, n.Message)
}

func formatOptional(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func writeDashboardText(w io.Writer, d Dashboard) {
	fmt.Fprintf(w, "Dashboard %s to %s\n\n", d.From, d.To)
	WriteSummaryText(w, d.Summary)
	if d.Latest != nil {
		WriteLatestWeightText(w, *d.Latest)
	}
	fmt.Fprintln(w)
	WriteTrendText(w, d.Trend)
	fmt.Fprintln(w)
	if d.Correlation != nil {
		WriteCorrelationText(w, *d.Correlation)
	} else {
		WriteNoticeText(w, "Correlation", d.CorrelationNotice)
	}
	fmt.Fprintln(w)
	if d.Forecast != nil {
		WriteForecastText(w, *d.Forecast)
	} else {
		WriteNoticeText(w, "Forecast", d.ForecastNotice)
	}
	fmt.Fprintln(w)
	WriteWeekdayText(w, d.Weekday)
}

func renderDashboardMarkdown(d Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weight Loss Dashboard\n\n")
	fmt.Fprintf(&b, "- Range: `%s` to `%s`\n", d.From, d.To)
	fmt.Fprintf(&b, "- Entries: food %d, weight %d, sleep %d\n", d.Summary.Counts.Food, d.Summary.Counts.Weight, d.Summary.Counts.Sleep)
	fmt.Fprintf(&b, "- Average weight: %s kg\n", formatOptional(d.Summary.AvgWeightKg, 1))
	fmt.Fprintf(&b, "- Average sleep: %s h\n", formatOptional(d.Summary.AvgSleepHours, 1))
	fmt.Fprintf(&b, "- Average daily calories: %s kcal\n", formatOptional(d.Summary.AvgDailyCalories, 0))
	if d.Latest != nil {
		fmt.Fprintf(&b, "- Latest weight: %.1f kg on %s\n", d.Latest.Entry.WeightKg, model.FormatDay(d.Latest.Entry.Date))
	}

	fmt.Fprintf(&b, "\n## Macros\n\n| Protein (g) | Carbs (g) | Fat (g) |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %.1f | %.1f | %.1f |\n", d.Summary.Macros.Protein, d.Summary.Macros.Carbs, d.Summary.Macros.Fat)

	fmt.Fprintf(&b, "\n## Weight trend (window %d)\n\n", d.Trend.Window)
	if len(d.Trend.Weight) == 0 {
		b.WriteString("No weight entries.\n")
	} else {
		b.WriteString("| Date | Weight (kg) | Rolling (kg) |\n|---|---:|---:|\n")
		for _, p := range d.Trend.Weight {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f |\n", model.FormatDay(p.Date), p.Value, p.Rolling)
		}
	}

	b.WriteString("\n## Correlation\n\n")
	if d.Correlation == nil {
		fmt.Fprintf(&b, "_%s_\n", d.CorrelationNotice.Message)
	} else {
		m := d.Correlation
		b.WriteString("| | " + strings.Join(m.Labels, " | ") + " |\n|---|" + strings.Repeat("---:|", len(m.Labels)) + "\n")
		for i, row := range m.Values {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = formatCoefficient(v)
			}
			fmt.Fprintf(&b, "| %s | %s |\n", m.Labels[i], strings.Join(cells, " | "))
		}
	}

	b.WriteString("\n## Forecast\n\n")
	if d.Forecast == nil {
		fmt.Fprintf(&b, "_%s_\n", d.ForecastNotice.Message)
	} else {
		b.WriteString("| Date | Forecast (kg) |\n|---|---:|\n")
		for _, p := range d.Forecast.Forecast {
			fmt.Fprintf(&b, "| %s | %.2f |\n", model.FormatDay(p.Date), p.Value)
		}
	}

	b.WriteString("\n## Calories by weekday\n\n| Weekday | Mean (kcal) | Entries |\n|---|---:|---:|\n")
	for _, s := range d.Weekday {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", s.Weekday, formatOptional(s.MeanCalories, 0), s.Entries)
	}
	return b.String()
}

func renderDashboardHTML(d Dashboard) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(renderDashboardMarkdown(d)), &body); err != nil {
		return nil, fmt.Errorf("render dashboard html: %w", err)
	}
	safe := bluemonday.UGCPolicy().SanitizeBytes(body.Bytes())

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Weight Loss Dashboard</title></head><body>\n")
	out.Write(safe)
	out.WriteString("</body></html>\n")
	return out.Bytes(), nil
}

// RenderDashboard formats d for terminal output or a report file.
func RenderDashboard(d Dashboard, format ReportFormat) ([]byte, error) {
	switch format {
	case FormatText:
		var b bytes.Buffer
		writeDashboardText(&b, d)
		return b.Bytes(), nil
	case FormatMarkdown:
		return []byte(renderDashboardMarkdown(d)), nil
	case FormatHTML:
		return renderDashboardHTML(d)
	case FormatJSON, FormatYAML:
		var b bytes.Buffer
		if err := Encode(&b, d, format); err != nil {
			return nil, fmt.Errorf("encode dashboard: %w", err)
		}
		return b.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported dashboard format %q", format)
	}
}
