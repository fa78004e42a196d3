package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

func TestLogFoodPersistsAndReturnsNewState(t *testing.T) {
	t.Parallel()
	_, st := newTestStore(t)
	ctx := context.Background()

	empty := service.State{}
	next, entry, err := service.LogFood(ctx, st, empty, service.FoodInput{
		Date:      mustDay(t, "2024-03-01"),
		Time:      mustClock(t, "08:15"),
		FoodItems: service.ParseFoodItems("Oatmeal, Banana, "),
		Calories:  350,
		ProteinG:  12,
		CarbsG:    60,
		FatG:      6,
		MealType:  "breakfast",
	})
	if err != nil {
		t.Fatalf("log food: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if len(empty.Food) != 0 {
		t.Fatalf("expected input state to stay unchanged")
	}
	if len(next.Food) != 1 || next.Food[0].MealType != model.MealBreakfast {
		t.Fatalf("unexpected next state %+v", next.Food)
	}
	if got := strings.Join(next.Food[0].FoodItems, "|"); got != "Oatmeal|Banana" {
		t.Fatalf("unexpected items %q", got)
	}

	loaded, err := service.LoadState(ctx, st, nil)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(loaded.Food) != 1 || loaded.Food[0].ID != entry.ID {
		t.Fatalf("expected persisted entry, got %+v", loaded.Food)
	}
}

func TestLogWeightConvertsPounds(t *testing.T) {
	t.Parallel()
	_, st := newTestStore(t)

	_, entry, err := service.LogWeight(context.Background(), st, service.State{}, service.WeightInput{
		Date:    mustDay(t, "2024-03-01"),
		Time:    mustClock(t, "07:00"),
		Weight:  180,
		Unit:    "lb",
		Context: "wake-up",
	})
	if err != nil {
		t.Fatalf("log weight: %v", err)
	}
	if entry.WeightKg < 81.6 || entry.WeightKg > 81.7 {
		t.Fatalf("expected ~81.65kg, got %.4f", entry.WeightKg)
	}
	if entry.Context != model.ContextWakeUp {
		t.Fatalf("unexpected context %q", entry.Context)
	}
}

func TestLogValidationFailuresAreInvalidInput(t *testing.T) {
	t.Parallel()
	_, st := newTestStore(t)
	ctx := context.Background()
	day := mustDay(t, "2024-03-01")

	cases := []struct {
		name string
		run  func() error
	}{
		{"no food items", func() error {
			_, _, err := service.LogFood(ctx, st, service.State{}, service.FoodInput{Date: day, MealType: "Lunch"})
			return err
		}},
		{"negative calories", func() error {
			_, _, err := service.LogFood(ctx, st, service.State{}, service.FoodInput{Date: day, FoodItems: []string{"x"}, Calories: -1, MealType: "Lunch"})
			return err
		}},
		{"unknown meal", func() error {
			_, _, err := service.LogFood(ctx, st, service.State{}, service.FoodInput{Date: day, FoodItems: []string{"x"}, MealType: "Brunch"})
			return err
		}},
		{"zero weight", func() error {
			_, _, err := service.LogWeight(ctx, st, service.State{}, service.WeightInput{Date: day, Context: "Wake up"})
			return err
		}},
		{"long notes", func() error {
			_, _, err := service.LogWeight(ctx, st, service.State{}, service.WeightInput{Date: day, Weight: 80, Context: "Wake up", Notes: strings.Repeat("a", 201)})
			return err
		}},
		{"quality out of range", func() error {
			_, _, err := service.LogSleep(ctx, st, service.State{}, service.SleepInput{Date: day, Quality: 11})
			return err
		}},
	}
	for _, tc := range cases {
		err := tc.run()
		if !errors.Is(err, service.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}

	state, err := service.LoadState(ctx, st, nil)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(state.Food)+len(state.Weight)+len(state.Sleep) != 0 {
		t.Fatalf("expected nothing persisted, got %+v", state)
	}
}

func TestLogStoreFailureReportsNotSaved(t *testing.T) {
	t.Parallel()
	sqldb, st := newTestStore(t)
	if err := sqldb.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	state := service.State{}
	next, _, err := service.LogSleep(context.Background(), st, state, service.SleepInput{
		Date:      mustDay(t, "2024-03-01"),
		SleepTime: mustClock(t, "22:00"),
		WakeTime:  mustClock(t, "06:00"),
		Quality:   7,
	})
	if !errors.Is(err, store.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !strings.Contains(err.Error(), "not saved") {
		t.Fatalf("expected not-saved message, got %q", err.Error())
	}
	if len(next.Sleep) != 0 {
		t.Fatalf("expected unchanged state")
	}
}
