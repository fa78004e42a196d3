package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

// ErrInvalidInput wraps every validation failure of a log command.
var ErrInvalidInput = errors.New("invalid input")

const (
	MaxNotesLength = 200
	MinQuality     = 1
	MaxQuality     = 10
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type FoodInput struct {
	Date      time.Time
	Time      model.Clock
	FoodItems []string
	Calories  float64
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	MealType  string
	PhotoRef  string
}

type WeightInput struct {
	Date    time.Time
	Time    model.Clock
	Weight  float64
	Unit    string
	Context string
	Notes   string
}

type SleepInput struct {
	Date      time.Time
	SleepTime model.Clock
	WakeTime  model.Clock
	Quality   int
	Notes     string
}

// ParseFoodItems splits a comma-separated list of food names, trimming
// blanks.
func ParseFoodItems(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return invalid("%s must be >= 0", name)
	}
	return nil
}

func validateNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return "", invalid("notes must be at most %d characters", MaxNotesLength)
	}
	return notes, nil
}

func convertWeightToKg(weight float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "kg":
		return weight, nil
	case "lb", "lbs":
		return weight * 0.45359237, nil
	default:
		return 0, invalid("unit must be kg or lb")
	}
}

func (in FoodInput) entry() (model.FoodEntry, error) {
	items := make([]string, 0, len(in.FoodItems))
	for _, it := range in.FoodItems {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return model.FoodEntry{}, invalid("at least one food item is required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{{"calories", in.Calories}, {"protein", in.ProteinG}, {"carbs", in.CarbsG}, {"fat", in.FatG}} {
		if err := validateNonNegativeFloat(f.name, f.value); err != nil {
			return model.FoodEntry{}, err
		}
	}
	meal, err := model.ParseMealType(in.MealType)
	if err != nil {
		return model.FoodEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Date.IsZero() {
		return model.FoodEntry{}, invalid("date is required")
	}
	return model.FoodEntry{
		Date:      model.Day(in.Date),
		Time:      in.Time,
		FoodItems: items,
		Calories:  in.Calories,
		ProteinG:  in.ProteinG,
		CarbsG:    in.CarbsG,
		FatG:      in.FatG,
		MealType:  meal,
		PhotoRef:  strings.TrimSpace(in.PhotoRef),
	}, nil
}

func (in WeightInput) entry() (model.WeightEntry, error) {
	if in.Weight <= 0 {
		return model.WeightEntry{}, invalid("weight must be > 0")
	}
	kg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return model.WeightEntry{}, err
	}
	wctx, err := model.ParseWeightContext(in.Context)
	if err != nil {
		return model.WeightEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	notes, err := validateNotes(in.Notes)
	if err != nil {
		return model.WeightEntry{}, err
	}
	if in.Date.IsZero() {
		return model.WeightEntry{}, invalid("date is required")
	}
	return model.WeightEntry{Date: model.Day(in.Date), Time: in.Time, WeightKg: kg, Context: wctx, Notes: notes}, nil
}

func (in SleepInput) entry() (model.SleepEntry, error) {
	if in.Quality < MinQuality || in.Quality > MaxQuality {
		return model.SleepEntry{}, invalid("quality must be between %d and %d", MinQuality, MaxQuality)
	}
	notes, err := validateNotes(in.Notes)
	if err != nil {
		return model.SleepEntry{}, err
	}
	if in.Date.IsZero() {
		return model.SleepEntry{}, invalid("date is required")
	}
	return model.SleepEntry{Date: model.Day(in.Date), SleepTime: in.SleepTime, WakeTime: in.WakeTime, Quality: in.Quality, Notes: notes}, nil
}

// LogFood validates in, persists it and returns the state with the new
// entry added. On a store failure the entry is not saved and state is
// returned unchanged.
func LogFood(ctx context.Context, st Store, state State, in FoodInput) (State, model.FoodEntry, error) {
	e, err := in.entry()
	if err != nil {
		return state, model.FoodEntry{}, err
	}
	if e.ID, err = st.AppendFood(ctx, e); err != nil {
		return state, model.FoodEntry{}, fmt.Errorf("food entry was not saved: %w", err)
	}
	next := state.clone()
	next.Food = insertSorted(next.Food, e)
	return next, e, nil
}

func LogWeight(ctx context.Context, st Store, state State, in WeightInput) (State, model.WeightEntry, error) {
	e, err := in.entry()
	if err != nil {
		return state, model.WeightEntry{}, err
	}
	if e.ID, err = st.AppendWeight(ctx, e); err != nil {
		return state, model.WeightEntry{}, fmt.Errorf("weight entry was not saved: %w", err)
	}
	next := state.clone()
	next.Weight = insertSorted(next.Weight, e)
	return next, e, nil
}

func LogSleep(ctx context.Context, st Store, state State, in SleepInput) (State, model.SleepEntry, error) {
	e, err := in.entry()
	if err != nil {
		return state, model.SleepEntry{}, err
	}
	if e.ID, err = st.AppendSleep(ctx, e); err != nil {
		return state, model.SleepEntry{}, fmt.Errorf("sleep entry was not saved: %w", err)
	}
	next := state.clone()
	next.Sleep = insertSorted(next.Sleep, e)
	return next, e, nil
}

func (s State) clone() State {
	return State{
		Food:   append([]model.FoodEntry(nil), s.Food...),
		Weight: append([]model.WeightEntry(nil), s.Weight...),
		Sleep:  append([]model.SleepEntry(nil), s.Sleep...),
	}
}
