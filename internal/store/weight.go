package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

func (s *Store) AppendWeight(ctx context.Context, e model.WeightEntry) (string, error) {
	id := s.newID()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO weight_entries(id, entry_date, entry_time, weight_kg, context, notes)
VALUES(?, ?, ?, ?, ?, ?)
`, id, model.FormatDay(e.Date), e.Time.String(), e.WeightKg, string(e.Context), e.Notes)
	if err != nil {
		return "", &Error{Op: "append", Kind: model.KindWeight, Err: err}
	}
	s.logger.Debug("appended record", zap.String("kind", string(model.KindWeight)), zap.String("id", id))
	return id, nil
}

func (s *Store) QueryWeight(ctx context.Context, q Query) ([]model.WeightEntry, error) {
	query, args, err := q.build(`
SELECT id, entry_date, entry_time, weight_kg, context, notes
FROM weight_entries`, "entry_date", "entry_time")
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindWeight, Err: err}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindWeight, Err: err}
	}
	defer rows.Close()

	items := make([]model.WeightEntry, 0)
	for rows.Next() {
		var (
			e                        model.WeightEntry
			dateRaw, timeRaw, ctxRaw string
		)
		if err := rows.Scan(&e.ID, &dateRaw, &timeRaw, &e.WeightKg, &ctxRaw, &e.Notes); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindWeight, Err: err}
		}
		if e.Date, err = parseStoredDay(dateRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindWeight, Err: err}
		}
		if e.Time, err = model.ParseClock(timeRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindWeight, Err: fmt.Errorf("entry %s: %w", e.ID, err)}
		}
		e.Context = model.WeightContext(ctxRaw)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "iterate", Kind: model.KindWeight, Err: err}
	}
	s.logger.Debug("queried records", zap.String("kind", string(model.KindWeight)), zap.Int("count", len(items)))
	return items, nil
}
