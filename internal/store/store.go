// Package store persists food, weight and sleep records in SQLite. Records
// are append-only: the store exposes no update or delete.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// ErrStore matches every *Error returned by the store.
var ErrStore = errors.New("store error")

// Error reports a persistence failure. A failed append means the record
// was not saved.
type Error struct {
	Op   string
	Kind model.Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrStore }

type Order int

const (
	DateAsc Order = iota
	DateDesc
	Inserted
)

// Query restricts a read. A nil From or To leaves that side open; Limit <= 0
// returns every matching row.
type Query struct {
	From  *time.Time
	To    *time.Time
	Order Order
	Limit int
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
	newID  func() string
}

func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger.Named("store"), newID: uuid.NewString}
}

func (q Query) where(dateCol string) (string, []any, error) {
	var clauses []string
	args := make([]any, 0, 2)
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return "", nil, fmt.Errorf("from date %s is after to date %s", model.FormatDay(*q.From), model.FormatDay(*q.To))
	}
	if q.From != nil {
		clauses = append(clauses, dateCol+" >= ?")
		args = append(args, model.FormatDay(*q.From))
	}
	if q.To != nil {
		clauses = append(clauses, dateCol+" <= ?")
		args = append(args, model.FormatDay(*q.To))
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (q Query) orderBy(dateCol, timeCol string) string {
	switch q.Order {
	case DateDesc:
		return fmt.Sprintf(" ORDER BY %s DESC, %s DESC, rowid DESC", dateCol, timeCol)
	case Inserted:
		return " ORDER BY rowid ASC"
	default:
		return fmt.Sprintf(" ORDER BY %s ASC, %s ASC, rowid ASC", dateCol, timeCol)
	}
}

func (q Query) limit() (string, []any) {
	if q.Limit <= 0 {
		return "", nil
	}
	return " LIMIT ?", []any{q.Limit}
}

func (q Query) build(base, dateCol, timeCol string) (string, []any, error) {
	where, args, err := q.where(dateCol)
	if err != nil {
		return "", nil, err
	}
	lim, limArgs := q.limit()
	return base + where + q.orderBy(dateCol, timeCol) + lim, append(args, limArgs...), nil
}

func parseStoredDay(raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored date %q: %w", raw, err)
	}
	return d, nil
}
