package service_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

func TestExportFoodCSVRoundTripsItems(t *testing.T) {
	t.Parallel()
	state := service.State{Food: []model.FoodEntry{{
		ID:        "a",
		Date:      mustDay(t, "2024-03-01"),
		Time:      mustClock(t, "12:00"),
		FoodItems: []string{"mac, cheese", "tea"},
		Calories:  640.5,
		MealType:  model.MealLunch,
	}}}

	var buf bytes.Buffer
	if err := service.Export(&buf, state, model.KindFood, service.ExportCSV); err != nil {
		t.Fatalf("export: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if records[0][3] != "food_items" || records[1][4] != "640.5" {
		t.Fatalf("unexpected csv %v", records)
	}
	items := store.DecodeItems(records[1][3])
	if len(items) != 2 || items[0] != "mac, cheese" {
		t.Fatalf("items did not round-trip: %v", items)
	}
}

func TestExportSleepJSONIncludesDuration(t *testing.T) {
	t.Parallel()
	state := service.State{Sleep: []model.SleepEntry{{
		ID: "s", Date: mustDay(t, "2024-03-01"), SleepTime: mustClock(t, "22:00"), WakeTime: mustClock(t, "06:00"), Quality: 7,
	}}}

	var buf bytes.Buffer
	if err := service.Export(&buf, state, model.KindSleep, service.ExportJSON); err != nil {
		t.Fatalf("export: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0]["duration"] != 8.0 {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()
	if f, err := service.ParseExportFormat(""); err != nil || f != service.ExportCSV {
		t.Fatalf("expected csv default, got %q %v", f, err)
	}
	if _, err := service.ParseExportFormat("xml"); err == nil {
		t.Fatalf("expected xml to be rejected")
	}
}
