package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// AppendSleep stores the two clocks only; duration is recomputed on read.
func (s *Store) AppendSleep(ctx context.Context, e model.SleepEntry) (string, error) {
	id := s.newID()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sleep_entries(id, entry_date, sleep_time, wake_time, quality, notes)
VALUES(?, ?, ?, ?, ?, ?)
`, id, model.FormatDay(e.Date), e.SleepTime.String(), e.WakeTime.String(), e.Quality, e.Notes)
	if err != nil {
		return "", &Error{Op: "append", Kind: model.KindSleep, Err: err}
	}
	s.logger.Debug("appended record", zap.String("kind", string(model.KindSleep)), zap.String("id", id))
	return id, nil
}

func (s *Store) QuerySleep(ctx context.Context, q Query) ([]model.SleepEntry, error) {
	query, args, err := q.build(`
SELECT id, entry_date, sleep_time, wake_time, quality, notes
FROM sleep_entries`, "entry_date", "sleep_time")
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindSleep, Err: err}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindSleep, Err: err}
	}
	defer rows.Close()

	items := make([]model.SleepEntry, 0)
	for rows.Next() {
		var (
			e                          model.SleepEntry
			dateRaw, sleepRaw, wakeRaw string
		)
		if err := rows.Scan(&e.ID, &dateRaw, &sleepRaw, &wakeRaw, &e.Quality, &e.Notes); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindSleep, Err: err}
		}
		if e.Date, err = parseStoredDay(dateRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindSleep, Err: err}
		}
		if e.SleepTime, err = model.ParseClock(sleepRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindSleep, Err: fmt.Errorf("entry %s: %w", e.ID, err)}
		}
		if e.WakeTime, err = model.ParseClock(wakeRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindSleep, Err: fmt.Errorf("entry %s: %w", e.ID, err)}
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "iterate", Kind: model.KindSleep, Err: err}
	}
	s.logger.Debug("queried records", zap.String("kind", string(model.KindSleep)), zap.Int("count", len(items)))
	return items, nil
}
