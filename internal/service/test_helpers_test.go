package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/db"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newTestStore(t *testing.T) (*sql.DB, *store.Store) {
	t.Helper()
	sqldb := newTestDB(t)
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb, store.New(sqldb, zap.NewNop())
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDay(s)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return d
}

func mustClock(t *testing.T, s string) model.Clock {
	t.Helper()
	c, err := model.ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	return c
}
