package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/codesolver12/weight-loss-tracker/internal/db"
	"github.com/codesolver12/weight-loss-tracker/internal/server"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var fixedNow = time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))

	logger := zaptest.NewLogger(t)
	st := store.New(sqldb, logger)
	srv := server.New(server.Options{
		Store:    st,
		Logger:   logger,
		PhotoDir: filepath.Join(t.TempDir(), "photos"),
		Now:      func() time.Time { return fixedNow },
	})
	return srv.Router(), st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	rr := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateAndListRecords(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/api/food", map[string]any{
		"date": "2024-02-09", "time": "12:30", "food_items": []string{"Salad", "Bread"},
		"calories": 450, "protein": 20, "carbs": 50, "fat": 15, "meal_type": "Lunch",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotEmpty(t, decode(t, rr)["id"])

	rr = doJSON(t, r, http.MethodPost, "/api/weight", map[string]any{"weight": 80.5, "context": "Wake up"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	entry := decode(t, rr)["entry"].(map[string]any)
	assert.Equal(t, "2024-02-10", entry["date"])
	assert.Equal(t, "09:30", entry["time"])

	rr = doJSON(t, r, http.MethodPost, "/api/sleep", map[string]any{
		"date": "2024-02-09", "sleep_time": "22:00", "wake_time": "06:00", "quality": 8,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sleep := decode(t, rr)["entry"].(map[string]any)
	assert.Equal(t, 8.0, sleep["duration"])

	rr = doJSON(t, r, http.MethodGet, "/api/food?from=2024-02-01&to=2024-02-10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode(t, rr)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, []any{"Salad", "Bread"}, items[0].(map[string]any)["food_items"])
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		path string
		body map[string]any
	}{
		{"/api/food", map[string]any{"food_items": []string{}, "meal_type": "Lunch"}},
		{"/api/food", map[string]any{"food_items": []string{"x"}, "meal_type": "Brunch"}},
		{"/api/weight", map[string]any{"weight": -1, "context": "Wake up"}},
		{"/api/weight", map[string]any{"weight": 80, "context": "Wake up", "date": "02/10/2024"}},
		{"/api/sleep", map[string]any{"sleep_time": "22:00", "wake_time": "6am", "quality": 5}},
		{"/api/sleep", map[string]any{"sleep_time": "22:00", "wake_time": "06:00", "quality": 0}},
	}
	for _, tc := range cases {
		rr := doJSON(t, r, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "%s %v: %s", tc.path, tc.body, rr.Body.String())
	}
}

func TestAnalyticsInvalidRangeIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, view := range []string{"trends", "correlation", "forecast", "weekday", "summary", "dashboard"} {
		rr := doJSON(t, r, http.MethodGet, "/api/analytics/"+view+"?from=2024-02-10&to=2024-02-01", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, view)
	}
}

func TestAnalyticsThresholdsAreInformational(t *testing.T) {
	r, _ := newTestRouter(t)
	rr := doJSON(t, r, http.MethodPost, "/api/weight", map[string]any{"weight": 80, "context": "Wake up", "date": "2024-02-09"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/forecast", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "insufficient_data", body["reason"])

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/correlation", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decode(t, rr)["available"])
}

func TestAnalyticsViewsWithData(t *testing.T) {
	r, _ := newTestRouter(t)
	start := fixedNow.AddDate(0, 0, -34)
	for i := 0; i < 35; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		rr := doJSON(t, r, http.MethodPost, "/api/weight", map[string]any{
			"date": date, "time": "07:00", "weight": 85 - 0.1*float64(i) + 0.15*float64(i%3), "context": "Wake up",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		rr = doJSON(t, r, http.MethodPost, "/api/food", map[string]any{
			"date": date, "time": "13:00", "food_items": []string{fmt.Sprintf("meal %d", i)},
			"calories": 1700 + 50*(i%6), "protein": 90 + 5*(i%4), "carbs": 200 + 10*(i%5), "fat": 55 + 3*(i%3), "meal_type": "Lunch",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := doJSON(t, r, http.MethodGet, "/api/analytics/forecast", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fc := decode(t, rr)["forecast"].(map[string]any)
	assert.Len(t, fc["forecast"], 14)

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/correlation", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	corr := decode(t, rr)["correlation"].(map[string]any)
	assert.Len(t, corr["labels"], 5)

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/weekday", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	days := decode(t, rr)["weekdays"].([]any)
	require.Len(t, days, 7)
	assert.Equal(t, "Monday", days[0].(map[string]any)["weekday"])

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/trends?window=3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 3, decode(t, rr)["window"])

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, decode(t, rr)["latest_weight"])

	rr = doJSON(t, r, http.MethodGet, "/api/analytics/dashboard?window=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = doJSON(t, r, http.MethodGet, "/api/analytics/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["forecast_notice"].(map[string]any)["available"])
}

func TestUploadPhoto(t *testing.T) {
	r, _ := newTestRouter(t)

	upload := func(name string, data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("photo", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/photos", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	rr := upload("meal.png", img.Bytes())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	ref, _ := decode(t, rr)["photo_ref"].(string)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	rr = doJSON(t, r, http.MethodPost, "/api/food", map[string]any{
		"food_items": []string{"Soup"}, "calories": 200, "meal_type": "Dinner", "photo_ref": ref,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = upload("notes.txt", []byte("not an image"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
