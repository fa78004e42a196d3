package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

// Store is the persistence the handlers need. *store.Store implements it.
type Store interface {
	AppendFood(ctx context.Context, e model.FoodEntry) (string, error)
	AppendWeight(ctx context.Context, e model.WeightEntry) (string, error)
	AppendSleep(ctx context.Context, e model.SleepEntry) (string, error)
	QueryFood(ctx context.Context, q store.Query) ([]model.FoodEntry, error)
	QueryWeight(ctx context.Context, q store.Query) ([]model.WeightEntry, error)
	QuerySleep(ctx context.Context, q store.Query) ([]model.SleepEntry, error)
}

// State is the working set of one session: every loaded entry of each kind,
// ascending by date and time. Handlers return a new State rather than
// mutating the one they were given.
type State struct {
	Food   []model.FoodEntry   `json:"food"`
	Weight []model.WeightEntry `json:"weight"`
	Sleep  []model.SleepEntry  `json:"sleep"`
}

// LoadState reads all three kinds. A nil r loads everything.
func LoadState(ctx context.Context, st Store, r *analytics.DateRange) (State, error) {
	q := store.Query{Order: store.DateAsc}
	if r != nil {
		if err := r.Validate(); err != nil {
			return State{}, err
		}
		from, to := r.Start, r.End
		q.From, q.To = &from, &to
	}
	food, err := st.QueryFood(ctx, q)
	if err != nil {
		return State{}, fmt.Errorf("load food entries: %w", err)
	}
	weight, err := st.QueryWeight(ctx, q)
	if err != nil {
		return State{}, fmt.Errorf("load weight entries: %w", err)
	}
	sleep, err := st.QuerySleep(ctx, q)
	if err != nil {
		return State{}, fmt.Errorf("load sleep entries: %w", err)
	}
	return State{Food: food, Weight: weight, Sleep: sleep}, nil
}

// InRange restricts every collection to r.
func (s State) InRange(r analytics.DateRange) (State, error) {
	food, err := analytics.Window(s.Food, r)
	if err != nil {
		return State{}, err
	}
	weight, err := analytics.Window(s.Weight, r)
	if err != nil {
		return State{}, err
	}
	sleep, err := analytics.Window(s.Sleep, r)
	if err != nil {
		return State{}, err
	}
	return State{Food: food, Weight: weight, Sleep: sleep}, nil
}

// Notice is the informational form of an unmet analytics threshold.
type Notice struct {
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

const (
	ReasonInsufficientData    = "insufficient_data"
	ReasonForecastUnavailable = "forecast_unavailable"
)

// NoticeFor converts insufficient-data and forecast-unavailable errors into
// a Notice. Any other error is reported as not handled.
func NoticeFor(err error) (Notice, bool) {
	switch {
	case errors.Is(err, analytics.ErrInsufficientData):
		return Notice{Reason: ReasonInsufficientData, Message: err.Error()}, true
	case errors.Is(err, analytics.ErrForecastUnavailable):
		return Notice{Reason: ReasonForecastUnavailable, Message: err.Error()}, true
	default:
		return Notice{}, false
	}
}

func insertSorted[T analytics.Dated](items []T, e T) []T {
	items = append(items, e)
	analytics.SortByDateTime(items)
	return items
}
