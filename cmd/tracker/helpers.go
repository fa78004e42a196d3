package tracker

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/app"
	"github.com/codesolver12/weight-loss-tracker/internal/db"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

// now is replaced in tests.
var now = time.Now

func openDB() (*sql.DB, error) {
	if err := app.EnsureDBDir(settings.DBPath); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(settings.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func withDB(run func(*sql.DB) error) error {
	sqldb, err := openDB()
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func withStore(run func(context.Context, *store.Store) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(context.Background(), store.New(sqldb, logger))
	})
}

// loadState reads every entry; analytics then restrict to the requested
// range so the latest-weight view can still see readings outside it.
func loadState(ctx context.Context, st *store.Store) (service.State, error) {
	return service.LoadState(ctx, st, nil)
}

func parseDateOrToday(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return model.Day(now()), nil
	}
	d, err := model.ParseDay(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return d, nil
}

func parseClockOrNow(value string) (model.Clock, error) {
	if strings.TrimSpace(value) == "" {
		return model.ClockOf(now()), nil
	}
	c, err := model.ParseClock(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --time: %w", err)
	}
	return c, nil
}

// resolveRange applies --week or --month when set, otherwise --from/--to.
func resolveRange(from, to, week, month string) (analytics.DateRange, error) {
	set := 0
	for _, v := range []string{week, month} {
		if v != "" {
			set++
		}
	}
	if from != "" || to != "" {
		set++
	}
	if set > 1 {
		return analytics.DateRange{}, fmt.Errorf("use only one of --from/--to, --week or --month")
	}
	switch {
	case week != "":
		return service.WeekRange(currentAsEmpty(week), now())
	case month != "":
		return service.MonthRange(currentAsEmpty(month), now())
	default:
		return service.ResolveRange(from, to, now())
	}
}

func currentAsEmpty(v string) string {
	if strings.EqualFold(v, "current") {
		return ""
	}
	return v
}

func listQuery(date, from, to string, limit int) (store.Query, error) {
	q := store.Query{Order: store.DateDesc, Limit: limit}
	if date != "" {
		if from != "" || to != "" {
			return q, fmt.Errorf("use either --date or --from/--to")
		}
		from, to = date, date
	}
	if from != "" {
		d, err := model.ParseDay(from)
		if err != nil {
			return q, fmt.Errorf("invalid --from: %w", err)
		}
		q.From = &d
	}
	if to != "" {
		d, err := model.ParseDay(to)
		if err != nil {
			return q, fmt.Errorf("invalid --to: %w", err)
		}
		q.To = &d
	}
	if limit < 0 {
		return q, fmt.Errorf("--limit must be >= 0")
	}
	return q, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
