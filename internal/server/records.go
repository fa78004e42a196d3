package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/photo"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

type foodRequest struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	FoodItems []string `json:"food_items"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fat       float64  `json:"fat"`
	MealType  string   `json:"meal_type"`
	PhotoRef  string   `json:"photo_ref"`
}

type weightRequest struct {
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Weight  float64 `json:"weight"`
	Unit    string  `json:"unit"`
	Context string  `json:"context"`
	Notes   string  `json:"notes"`
}

type sleepRequest struct {
	Date      string `json:"date"`
	SleepTime string `json:"sleep_time"`
	WakeTime  string `json:"wake_time"`
	Quality   int    `json:"quality"`
	Notes     string `json:"notes"`
}

// dateAndClock fills a missing date or time from now.
func dateAndClock(date, clock string, now time.Time) (time.Time, model.Clock, error) {
	d := model.Day(now)
	if strings.TrimSpace(date) != "" {
		parsed, err := model.ParseDay(date)
		if err != nil {
			return time.Time{}, 0, err
		}
		d = parsed
	}
	c := model.ClockOf(now)
	if strings.TrimSpace(clock) != "" {
		parsed, err := model.ParseClock(clock)
		if err != nil {
			return time.Time{}, 0, err
		}
		c = parsed
	}
	return d, c, nil
}

func (s *Server) createFood(c *gin.Context) {
	var req foodRequest
	if !bindJSON(c, &req) {
		return
	}
	d, clock, err := dateAndClock(req.Date, req.Time, s.now())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.PhotoRef != "" {
		if _, err := photo.Path(s.photoDir, req.PhotoRef); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	_, entry, err := service.LogFood(c.Request.Context(), s.store, service.State{}, service.FoodInput{
		Date:      d,
		Time:      clock,
		FoodItems: req.FoodItems,
		Calories:  req.Calories,
		ProteinG:  req.Protein,
		CarbsG:    req.Carbs,
		FatG:      req.Fat,
		MealType:  req.MealType,
		PhotoRef:  req.PhotoRef,
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "entry": entry})
}

func (s *Server) createWeight(c *gin.Context) {
	var req weightRequest
	if !bindJSON(c, &req) {
		return
	}
	d, clock, err := dateAndClock(req.Date, req.Time, s.now())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	_, entry, err := service.LogWeight(c.Request.Context(), s.store, service.State{}, service.WeightInput{
		Date:    d,
		Time:    clock,
		Weight:  req.Weight,
		Unit:    req.Unit,
		Context: req.Context,
		Notes:   req.Notes,
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "entry": entry})
}

func (s *Server) createSleep(c *gin.Context) {
	var req sleepRequest
	if !bindJSON(c, &req) {
		return
	}
	d, _, err := dateAndClock(req.Date, "", s.now())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	sleepAt, err := model.ParseClock(req.SleepTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "sleep_time: "+err.Error())
		return
	}
	wakeAt, err := model.ParseClock(req.WakeTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "wake_time: "+err.Error())
		return
	}
	_, entry, err := service.LogSleep(c.Request.Context(), s.store, service.State{}, service.SleepInput{
		Date:      d,
		SleepTime: sleepAt,
		WakeTime:  wakeAt,
		Quality:   req.Quality,
		Notes:     req.Notes,
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "entry": entry})
}

func (s *Server) listQuery(c *gin.Context) (store.Query, bool) {
	q := store.Query{Order: store.DateDesc}
	if c.Query("from") != "" || c.Query("to") != "" {
		r, ok := s.rangeParam(c)
		if !ok {
			return q, false
		}
		q.From, q.To = &r.Start, &r.End
	}
	limit, ok := limitParam(c)
	if !ok {
		return q, false
	}
	q.Limit = limit
	return q, true
}

func (s *Server) listFood(c *gin.Context) {
	q, ok := s.listQuery(c)
	if !ok {
		return
	}
	items, err := s.store.QueryFood(c.Request.Context(), q)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listWeight(c *gin.Context) {
	q, ok := s.listQuery(c)
	if !ok {
		return
	}
	items, err := s.store.QueryWeight(c.Request.Context(), q)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listSleep(c *gin.Context) {
	q, ok := s.listQuery(c)
	if !ok {
		return
	}
	items, err := s.store.QuerySleep(c.Request.Context(), q)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) uploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "photo file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "open uploaded photo: "+err.Error())
		return
	}
	defer src.Close()

	ref, err := photo.Ingest(src, s.photoDir)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, photo.ErrUnsupportedType) || errors.Is(err, photo.ErrTooLarge) {
			status = http.StatusBadRequest
		}
		respondError(c, status, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"photo_ref": ref})
}
