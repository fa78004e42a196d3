package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
)

func TestSummarizeAveragesDailyTotals(t *testing.T) {
	t.Parallel()
	food := []model.FoodEntry{
		foodOn("2024-03-01", 500, 30, 60, 10),
		foodOn("2024-03-01", 700, 40, 80, 20),
		foodOn("2024-03-02", 1800, 100, 200, 50),
	}
	weights := dailyWeights("2024-03-01", 80, 79)
	sleeps := []model.SleepEntry{
		{Date: day("2024-03-01"), SleepTime: clock("22:00"), WakeTime: clock("06:00"), Quality: 7},
		{Date: day("2024-03-02"), SleepTime: clock("23:00"), WakeTime: clock("06:00"), Quality: 6},
	}

	s := analytics.Summarize(food, weights, sleeps)
	require.NotNil(t, s.AvgDailyCalories)
	assert.Equal(t, 1500.0, *s.AvgDailyCalories)
	assert.Equal(t, 79.5, *s.AvgWeightKg)
	assert.Equal(t, 7.5, *s.AvgSleepHours)
	assert.Equal(t, analytics.MacroTotals{Protein: 170, Carbs: 340, Fat: 80}, s.Macros)
	assert.Equal(t, []float64{1200, 1800}, s.DailyCalories.Values())
	assert.Equal(t, analytics.Counts{Food: 3, Weight: 2, Sleep: 2}, s.Counts)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	s := analytics.Summarize(nil, nil, nil)
	assert.Nil(t, s.AvgWeightKg)
	assert.Nil(t, s.AvgSleepHours)
	assert.Nil(t, s.AvgDailyCalories)
	assert.Empty(t, s.DailyCalories)
}

func TestLatestWeightChangeFromYesterday(t *testing.T) {
	t.Parallel()
	weights := []model.WeightEntry{
		weight("2024-03-02", "07:00", 79.4),
		weight("2024-03-01", "07:00", 80.2),
		weight("2024-03-01", "21:00", 80.0),
		weight("2024-03-02", "06:00", 79.9),
	}

	got, ok := analytics.LatestWeightChange(weights, day("2024-03-02"))
	require.True(t, ok)
	assert.Equal(t, 79.4, got.Entry.WeightKg)
	require.NotNil(t, got.Change)
	assert.InDelta(t, -0.6, *got.Change, 1e-9)

	got, ok = analytics.LatestWeightChange(weights, day("2024-03-10"))
	require.True(t, ok)
	assert.Nil(t, got.Change)

	_, ok = analytics.LatestWeightChange(nil, day("2024-03-02"))
	assert.False(t, ok)
}

func TestOnDayOrdersByTime(t *testing.T) {
	t.Parallel()
	weights := []model.WeightEntry{
		weight("2024-03-02", "21:00", 80.1),
		weight("2024-03-01", "07:00", 80.2),
		weight("2024-03-02", "07:00", 79.6),
	}
	got := analytics.OnDay(weights, day("2024-03-02"))
	assert.Equal(t, []float64{79.6, 80.1}, analytics.WeightSeries(got).Values())
}
