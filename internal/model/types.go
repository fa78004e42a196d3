package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for storage, flags and JSON.
const DateLayout = "2006-01-02"

type Kind string

const (
	KindFood   Kind = "food"
	KindWeight Kind = "weight"
	KindSleep  Kind = "sleep"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindFood:
		return KindFood, nil
	case KindWeight:
		return KindWeight, nil
	case KindSleep:
		return KindSleep, nil
	default:
		return "", fmt.Errorf("invalid kind %q (use food|weight|sleep)", value)
	}
}

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func ParseMealType(value string) (MealType, error) {
	v := strings.TrimSpace(value)
	for _, m := range MealTypes {
		if strings.EqualFold(v, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q (use Breakfast|Lunch|Dinner|Snack)", value)
}

type WeightContext string

const (
	ContextWakeUp          WeightContext = "Wake up"
	ContextBeforeBreakfast WeightContext = "Before breakfast"
	ContextAfterBreakfast  WeightContext = "After breakfast"
	ContextBeforeLunch     WeightContext = "Before lunch"
	ContextAfterLunch      WeightContext = "After lunch"
	ContextBeforeDinner    WeightContext = "Before dinner"
	ContextAfterDinner     WeightContext = "After dinner"
	ContextBeforeGym       WeightContext = "Before gym"
	ContextAfterGym        WeightContext = "After gym"
	ContextBeforeSleep     WeightContext = "Before sleep"
)

var WeightContexts = []WeightContext{
	ContextWakeUp,
	ContextBeforeBreakfast,
	ContextAfterBreakfast,
	ContextBeforeLunch,
	ContextAfterLunch,
	ContextBeforeDinner,
	ContextAfterDinner,
	ContextBeforeGym,
	ContextAfterGym,
	ContextBeforeSleep,
}

// ParseWeightContext accepts the display label case-insensitively, and also
// the hyphenated form used on the command line ("before-gym").
func ParseWeightContext(value string) (WeightContext, error) {
	v := strings.ReplaceAll(strings.TrimSpace(value), "-", " ")
	for _, c := range WeightContexts {
		if strings.EqualFold(v, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid weight context %q", value)
}

// Clock is a wall-clock time of day with minute precision, stored as
// minutes since midnight.
type Clock int

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %02d:%02d", hour, minute)
	}
	return Clock(hour*60 + minute), nil
}

func ParseClock(value string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Day truncates t to its calendar day. Dates are naive: the wall-clock
// year/month/day of t are kept and the location is dropped to UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

type FoodEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"-"`
	Time      Clock     `json:"time"`
	FoodItems []string  `json:"food_items"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein"`
	CarbsG    float64   `json:"carbs"`
	FatG      float64   `json:"fat"`
	MealType  MealType  `json:"meal_type"`
	PhotoRef  string    `json:"photo_ref,omitempty"`
}

type WeightEntry struct {
	ID       string        `json:"id"`
	Date     time.Time     `json:"-"`
	Time     Clock         `json:"time"`
	WeightKg float64       `json:"weight"`
	Context  WeightContext `json:"context"`
	Notes    string        `json:"notes"`
}

type SleepEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"-"`
	SleepTime Clock     `json:"sleep_time"`
	WakeTime  Clock     `json:"wake_time"`
	Quality   int       `json:"quality"`
	Notes     string    `json:"notes"`
}

func (e FoodEntry) EntryDate() time.Time { return e.Date }
func (e FoodEntry) EntryClock() Clock    { return e.Time }

func (e WeightEntry) EntryDate() time.Time { return e.Date }
func (e WeightEntry) EntryClock() Clock    { return e.Time }

func (e SleepEntry) EntryDate() time.Time { return e.Date }
func (e SleepEntry) EntryClock() Clock    { return e.SleepTime }

// DurationHours is derived from the two clocks on every call; it is never
// persisted.
func (e SleepEntry) DurationHours() float64 { return SleepDuration(e.SleepTime, e.WakeTime) }

func (e FoodEntry) MarshalJSON() ([]byte, error) {
	type alias FoodEntry
	return json.Marshal(struct {
		Date string `json:"date"`
		alias
	}{FormatDay(e.Date), alias(e)})
}

func (e WeightEntry) MarshalJSON() ([]byte, error) {
	type alias WeightEntry
	return json.Marshal(struct {
		Date string `json:"date"`
		alias
	}{FormatDay(e.Date), alias(e)})
}

func (e SleepEntry) MarshalJSON() ([]byte, error) {
	type alias SleepEntry
	return json.Marshal(struct {
		Date     string  `json:"date"`
		Duration float64 `json:"duration"`
		alias
	}{FormatDay(e.Date), e.DurationHours(), alias(e)})
}

// SleepDuration returns hours between sleep and wake, rounded to two
// decimals. A wake time at or before the sleep time is taken to fall on the
// following day.
func SleepDuration(sleep, wake Clock) float64 {
	minutes := int(wake) - int(sleep)
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return math.Round(float64(minutes)/60*100) / 100
}

func (e FoodEntry) MarshalYAML() (any, error)   { return yamlDoc(e) }
func (e WeightEntry) MarshalYAML() (any, error) { return yamlDoc(e) }
func (e SleepEntry) MarshalYAML() (any, error)  { return yamlDoc(e) }

// yamlDoc reuses the JSON field names for YAML output.
func yamlDoc(v json.Marshaler) (any, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
