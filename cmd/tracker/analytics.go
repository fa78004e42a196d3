package tracker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Trends, correlation, forecast and weekday views",
}

var (
	analyticsFrom   string
	analyticsTo     string
	analyticsWeek   string
	analyticsMonth  string
	analyticsWindow int
	analyticsOutput string
)

// analyticsView is the data a view needs: everything logged, the requested
// range, and the subset of entries inside it.
type analyticsView struct {
	all    service.State
	in     service.State
	r      analytics.DateRange
	format service.ReportFormat
}

func loadView(ctx context.Context, st *store.Store) (analyticsView, error) {
	format, err := service.ParseReportFormat(analyticsOutput)
	if err != nil {
		return analyticsView{}, err
	}
	switch format {
	case service.FormatText, service.FormatJSON, service.FormatYAML:
	default:
		return analyticsView{}, fmt.Errorf("invalid --output %q (use text|json|yaml)", analyticsOutput)
	}
	r, err := resolveRange(analyticsFrom, analyticsTo, analyticsWeek, analyticsMonth)
	if err != nil {
		return analyticsView{}, err
	}
	all, err := loadState(ctx, st)
	if err != nil {
		return analyticsView{}, err
	}
	in, err := all.InRange(r)
	if err != nil {
		return analyticsView{}, err
	}
	return analyticsView{all: all, in: in, r: r, format: format}, nil
}

func (v analyticsView) write(w io.Writer, data any, text func(io.Writer)) error {
	if v.format == service.FormatText {
		text(w)
		return nil
	}
	return service.Encode(w, data, v.format)
}

// writeNotice reports an unmet threshold. It returns err unchanged when err
// is not informational.
func (v analyticsView) writeNotice(w io.Writer, view string, err error) error {
	notice, ok := service.NoticeFor(err)
	if !ok {
		return err
	}
	logger.Info(strings.ToLower(view)+" skipped", zap.String("range", v.r.String()), zap.String("reason", notice.Reason))
	return v.write(w, notice, func(w io.Writer) { service.WriteNoticeText(w, view, notice) })
}

func windowOrDefault() int {
	if analyticsWindow > 0 {
		return analyticsWindow
	}
	return settings.RollingWindow
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Weight and sleep with a trailing rolling mean",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			v, err := loadView(ctx, st)
			if err != nil {
				return err
			}
			t := analytics.Trends(v.in.Weight, v.in.Sleep, windowOrDefault())
			return v.write(cmd.OutOrStdout(), t, func(w io.Writer) { service.WriteTrendText(w, t) })
		})
	},
}

var correlationCmd = &cobra.Command{
	Use:   "correlation",
	Short: "Correlate daily nutrition with daily weight change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			v, err := loadView(ctx, st)
			if err != nil {
				return err
			}
			m, err := analytics.Correlation(v.in.Food, v.in.Weight)
			if err != nil {
				return v.writeNotice(cmd.OutOrStdout(), "Correlation", err)
			}
			return v.write(cmd.OutOrStdout(), m, func(w io.Writer) { service.WriteCorrelationText(w, m) })
		})
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast weight for the next 14 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			v, err := loadView(ctx, st)
			if err != nil {
				return err
			}
			fc, err := analytics.ForecastWeight(v.in.Weight, v.r.Start)
			if err != nil {
				return v.writeNotice(cmd.OutOrStdout(), "Forecast", err)
			}
			return v.write(cmd.OutOrStdout(), fc, func(w io.Writer) { service.WriteForecastText(w, fc) })
		})
	},
}

var weekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Mean calories per entry by day of week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			v, err := loadView(ctx, st)
			if err != nil {
				return err
			}
			slots := analytics.WeekdayMeanCalories(v.in.Food)
			return v.write(cmd.OutOrStdout(), slots, func(w io.Writer) { service.WriteWeekdayText(w, slots) })
		})
	},
}

type summaryView struct {
	From         string                  `json:"from" yaml:"from"`
	To           string                  `json:"to" yaml:"to"`
	Summary      analytics.Summary       `json:"summary" yaml:"summary"`
	LatestWeight *analytics.LatestWeight `json:"latest_weight,omitempty" yaml:"latest_weight,omitempty"`
	TodayWeights []model.WeightEntry     `json:"today_weights" yaml:"today_weights"`
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Averages, macro totals and the latest weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			v, err := loadView(ctx, st)
			if err != nil {
				return err
			}
			out := summaryView{
				From:         model.FormatDay(v.r.Start),
				To:           model.FormatDay(v.r.End),
				Summary:      analytics.Summarize(v.in.Food, v.in.Weight, v.in.Sleep),
				TodayWeights: analytics.OnDay(v.all.Weight, now()),
			}
			if latest, ok := analytics.LatestWeightChange(v.all.Weight, now()); ok {
				out.LatestWeight = &latest
			}
			return v.write(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintf(w, "Summary %s to %s\n", out.From, out.To)
				service.WriteSummaryText(w, out.Summary)
				if out.LatestWeight != nil {
					service.WriteLatestWeightText(w, *out.LatestWeight)
				}
			})
		})
	},
}

var (
	dashboardOut    string
	dashboardFormat string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render every view for the range as text, markdown, html, json or yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := service.ParseReportFormat(dashboardFormat)
		if err != nil {
			return err
		}
		r, err := resolveRange(analyticsFrom, analyticsTo, analyticsWeek, analyticsMonth)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			state, err := loadState(ctx, st)
			if err != nil {
				return err
			}
			d, err := service.BuildDashboard(state, r, windowOrDefault(), now(), logger)
			if err != nil {
				return err
			}
			b, err := service.RenderDashboard(d, format)
			if err != nil {
				return err
			}
			if dashboardOut == "" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(dashboardOut, b, 0o644); err != nil {
				return fmt.Errorf("write dashboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s dashboard to %s\n", format, dashboardOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(trendsCmd, correlationCmd, forecastCmd, weekdayCmd, summaryCmd, dashboardCmd)

	analyticsCmd.PersistentFlags().StringVar(&analyticsFrom, "from", "", "Start date YYYY-MM-DD (default: 90 days before --to)")
	analyticsCmd.PersistentFlags().StringVar(&analyticsTo, "to", "", "End date YYYY-MM-DD (default today)")
	analyticsCmd.PersistentFlags().StringVar(&analyticsWeek, "week", "", "ISO week YYYY-Www, or current")
	analyticsCmd.PersistentFlags().StringVar(&analyticsMonth, "month", "", "Month YYYY-MM, or current")
	analyticsCmd.PersistentFlags().IntVar(&analyticsWindow, "window", 0, "Rolling window in days (default from config)")
	analyticsCmd.PersistentFlags().StringVar(&analyticsOutput, "output", "text", "Output format: text|json|yaml")

	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "", "Write the dashboard to this file instead of stdout")
	dashboardCmd.Flags().StringVar(&dashboardFormat, "out-format", "text", "Dashboard format: text|markdown|html|json|yaml")
}
