package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// DefaultRangeDays is the span used when neither end of a range is given.
const DefaultRangeDays = 90

var isoWeekPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// ResolveRange parses optional YYYY-MM-DD bounds. A missing end is today, a
// missing start is DefaultRangeDays before the end.
func ResolveRange(from, to string, now time.Time) (analytics.DateRange, error) {
	end := model.Day(now)
	if strings.TrimSpace(to) != "" {
		d, err := model.ParseDay(to)
		if err != nil {
			return analytics.DateRange{}, err
		}
		end = d
	}
	start := end.AddDate(0, 0, -(DefaultRangeDays - 1))
	if strings.TrimSpace(from) != "" {
		d, err := model.ParseDay(from)
		if err != nil {
			return analytics.DateRange{}, err
		}
		start = d
	}
	return analytics.NewDateRange(start, end)
}

// WeekRange resolves an ISO week (YYYY-Www); empty means the current week.
func WeekRange(week string, now time.Time) (analytics.DateRange, error) {
	if week == "" {
		start := beginningOfWeek(model.Day(now))
		return analytics.NewDateRange(start, start.AddDate(0, 0, 6))
	}
	if !isoWeekPattern.MatchString(week) {
		return analytics.DateRange{}, fmt.Errorf("invalid week %q (expected YYYY-Www)", week)
	}
	var year, weekNum int
	if _, err := fmt.Sscanf(week, "%4d-W%2d", &year, &weekNum); err != nil {
		return analytics.DateRange{}, fmt.Errorf("invalid week %q (expected YYYY-Www)", week)
	}
	if maxWeek := weeksInISOYear(year); weekNum < 1 || weekNum > maxWeek {
		return analytics.DateRange{}, fmt.Errorf("invalid week %q (week must be between 01 and %02d for %d)", week, maxWeek, year)
	}
	start := isoWeekStart(year, weekNum)
	return analytics.NewDateRange(start, start.AddDate(0, 0, 6))
}

// MonthRange resolves YYYY-MM; empty means the current month.
func MonthRange(month string, now time.Time) (analytics.DateRange, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return analytics.DateRange{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
		}
		start = parsed
	}
	return analytics.NewDateRange(start, start.AddDate(0, 1, -1))
}

func beginningOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	return beginningOfWeek(jan4).AddDate(0, 0, (week-1)*7)
}

func weeksInISOYear(year int) int {
	_, week := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
