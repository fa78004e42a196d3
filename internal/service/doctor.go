package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/codesolver12/weight-loss-tracker/internal/db"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// DoctorReport describes the health of the database. Records are never
// modified: corrections are new entries.
type DoctorReport struct {
	Integrity       string     `json:"integrity"`
	SchemaVersion   int        `json:"schema_version"`
	ExpectedVersion int        `json:"expected_version"`
	Counts          KindCounts `json:"counts"`
	MalformedRows   int        `json:"malformed_rows"`
	DuplicateRows   int        `json:"duplicate_rows"`
	Problems        []string   `json:"problems"`
}

type KindCounts struct {
	Food   int `json:"food"`
	Weight int `json:"weight"`
	Sleep  int `json:"sleep"`
}

func (r DoctorReport) Healthy() bool { return len(r.Problems) == 0 }

var doctorKinds = []model.Kind{model.KindFood, model.KindWeight, model.KindSleep}

var doctorDuplicateQueries = map[model.Kind]string{
	model.KindFood: `
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt FROM food_entries
  GROUP BY entry_date, entry_time, food_items, calories, meal_type
  HAVING cnt > 1
)`,
	model.KindWeight: `
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt FROM weight_entries
  GROUP BY entry_date, entry_time, weight_kg, context
  HAVING cnt > 1
)`,
	model.KindSleep: `
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt FROM sleep_entries
  GROUP BY entry_date, sleep_time, wake_time
  HAVING cnt > 1
)`,
}

var doctorMalformedQueries = map[model.Kind]string{
	model.KindFood:   `SELECT COUNT(1) FROM food_entries WHERE date(entry_date) IS NOT entry_date OR entry_time NOT GLOB '[0-2][0-9]:[0-5][0-9]' OR food_items = ''`,
	model.KindWeight: `SELECT COUNT(1) FROM weight_entries WHERE date(entry_date) IS NOT entry_date OR entry_time NOT GLOB '[0-2][0-9]:[0-5][0-9]'`,
	model.KindSleep:  `SELECT COUNT(1) FROM sleep_entries WHERE date(entry_date) IS NOT entry_date OR sleep_time NOT GLOB '[0-2][0-9]:[0-5][0-9]' OR wake_time NOT GLOB '[0-2][0-9]:[0-5][0-9]'`,
}

func RunDoctor(ctx context.Context, sqldb *sql.DB) (DoctorReport, error) {
	report := DoctorReport{ExpectedVersion: db.LatestVersion(), Problems: []string{}}

	if err := sqldb.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&report.Integrity); err != nil {
		return report, fmt.Errorf("doctor integrity check: %w", err)
	}
	if !strings.EqualFold(report.Integrity, "ok") {
		report.Problems = append(report.Problems, "sqlite integrity: "+report.Integrity)
	}

	if err := sqldb.QueryRowContext(ctx, `SELECT COALESCE(MAX(version),0) FROM schema_migrations`).Scan(&report.SchemaVersion); err != nil {
		return report, fmt.Errorf("doctor schema version: %w", err)
	}
	if report.SchemaVersion != report.ExpectedVersion {
		report.Problems = append(report.Problems, fmt.Sprintf("schema version %d, expected %d (run init)", report.SchemaVersion, report.ExpectedVersion))
	}

	counts := map[model.Kind]*int{
		model.KindFood:   &report.Counts.Food,
		model.KindWeight: &report.Counts.Weight,
		model.KindSleep:  &report.Counts.Sleep,
	}
	for kind, dst := range counts {
		if err := sqldb.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+string(kind)+`_entries`).Scan(dst); err != nil {
			return report, fmt.Errorf("doctor count %s: %w", kind, err)
		}
	}

	for _, kind := range doctorKinds {
		q := doctorMalformedQueries[kind]
		var n int
		if err := sqldb.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return report, fmt.Errorf("doctor malformed %s: %w", kind, err)
		}
		if n > 0 {
			report.Problems = append(report.Problems, fmt.Sprintf("%d malformed %s rows", n, kind))
		}
		report.MalformedRows += n
	}
	for _, kind := range doctorKinds {
		q := doctorDuplicateQueries[kind]
		var n int
		if err := sqldb.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return report, fmt.Errorf("doctor duplicate %s: %w", kind, err)
		}
		report.DuplicateRows += n
	}
	return report, nil
}
