package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

func TestResolveRangeDefaults(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)
	r, err := service.ResolveRange("", "", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if model.FormatDay(r.End) != "2024-03-31" || r.Days() != service.DefaultRangeDays {
		t.Fatalf("unexpected default range %s (%d days)", r, r.Days())
	}

	_, err = service.ResolveRange("2024-04-01", "2024-03-01", now)
	if !errors.Is(err, analytics.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}

func TestWeekAndMonthRanges(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	w, err := service.WeekRange("2024-W01", now)
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if model.FormatDay(w.Start) != "2024-01-01" || model.FormatDay(w.End) != "2024-01-07" {
		t.Fatalf("unexpected week range %s", w)
	}
	cur, err := service.WeekRange("", now)
	if err != nil || model.FormatDay(cur.Start) != "2024-03-04" {
		t.Fatalf("unexpected current week %s (%v)", cur, err)
	}
	if _, err := service.WeekRange("2024-W54", now); err == nil {
		t.Fatalf("expected week 54 to be rejected")
	}

	m, err := service.MonthRange("2024-02", now)
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if model.FormatDay(m.End) != "2024-02-29" {
		t.Fatalf("expected leap-year month end, got %s", m)
	}
}
