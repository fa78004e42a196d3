package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// AppendFood persists e under a fresh id and returns it. e.ID is ignored.
func (s *Store) AppendFood(ctx context.Context, e model.FoodEntry) (string, error) {
	id := s.newID()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO food_entries(id, entry_date, entry_time, food_items, calories, protein_g, carbs_g, fat_g, meal_type, photo_ref)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, model.FormatDay(e.Date), e.Time.String(), EncodeItems(e.FoodItems), e.Calories, e.ProteinG, e.CarbsG, e.FatG, string(e.MealType), e.PhotoRef)
	if err != nil {
		return "", &Error{Op: "append", Kind: model.KindFood, Err: err}
	}
	s.logger.Debug("appended record", zap.String("kind", string(model.KindFood)), zap.String("id", id))
	return id, nil
}

func (s *Store) QueryFood(ctx context.Context, q Query) ([]model.FoodEntry, error) {
	query, args, err := q.build(`
SELECT id, entry_date, entry_time, food_items, calories, protein_g, carbs_g, fat_g, meal_type, photo_ref
FROM food_entries`, "entry_date", "entry_time")
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindFood, Err: err}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "query", Kind: model.KindFood, Err: err}
	}
	defer rows.Close()

	items := make([]model.FoodEntry, 0)
	for rows.Next() {
		var (
			e                 model.FoodEntry
			dateRaw, timeRaw  string
			itemsRaw, mealRaw string
		)
		if err := rows.Scan(&e.ID, &dateRaw, &timeRaw, &itemsRaw, &e.Calories, &e.ProteinG, &e.CarbsG, &e.FatG, &mealRaw, &e.PhotoRef); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindFood, Err: err}
		}
		if e.Date, err = parseStoredDay(dateRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindFood, Err: err}
		}
		if e.Time, err = model.ParseClock(timeRaw); err != nil {
			return nil, &Error{Op: "scan", Kind: model.KindFood, Err: fmt.Errorf("entry %s: %w", e.ID, err)}
		}
		e.FoodItems = DecodeItems(itemsRaw)
		e.MealType = model.MealType(mealRaw)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "iterate", Kind: model.KindFood, Err: err}
	}
	s.logger.Debug("queried records", zap.String("kind", string(model.KindFood)), zap.Int("count", len(items)))
	return items, nil
}
