package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("invalid export format %q (use csv|json)", value)
	}
}

var exportHeaders = map[model.Kind][]string{
	model.KindFood:   {"id", "date", "time", "food_items", "calories", "protein", "carbs", "fat", "meal_type", "photo_ref"},
	model.KindWeight: {"id", "date", "time", "weight", "context", "notes"},
	model.KindSleep:  {"id", "date", "sleep_time", "wake_time", "duration", "quality", "notes"},
}

// Export writes one kind of record from state. CSV food_items keep the
// store's escaped encoding so the list round-trips.
func Export(w io.Writer, state State, kind model.Kind, format ExportFormat) error {
	if _, ok := exportHeaders[kind]; !ok {
		return fmt.Errorf("unsupported export kind %q", kind)
	}
	if format == ExportJSON {
		var v any
		switch kind {
		case model.KindFood:
			v = state.Food
		case model.KindWeight:
			v = state.Weight
		default:
			v = state.Sleep
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode %s export: %w", kind, err)
		}
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders[kind]); err != nil {
		return fmt.Errorf("write %s export header: %w", kind, err)
	}
	for _, row := range exportRows(state, kind) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s export row: %w", kind, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s export: %w", kind, err)
	}
	return nil
}

func exportRows(state State, kind model.Kind) [][]string {
	var rows [][]string
	switch kind {
	case model.KindFood:
		for _, e := range state.Food {
			rows = append(rows, []string{
				e.ID, model.FormatDay(e.Date), e.Time.String(), store.EncodeItems(e.FoodItems),
				formatFloat(e.Calories), formatFloat(e.ProteinG), formatFloat(e.CarbsG), formatFloat(e.FatG),
				string(e.MealType), e.PhotoRef,
			})
		}
	case model.KindWeight:
		for _, e := range state.Weight {
			rows = append(rows, []string{e.ID, model.FormatDay(e.Date), e.Time.String(), formatFloat(e.WeightKg), string(e.Context), e.Notes})
		}
	case model.KindSleep:
		for _, e := range state.Sleep {
			rows = append(rows, []string{
				e.ID, model.FormatDay(e.Date), e.SleepTime.String(), e.WakeTime.String(),
				formatFloat(e.DurationHours()), strconv.Itoa(e.Quality), e.Notes,
			})
		}
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
