package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

// inRange loads the state for the requested range. It writes the error
// response itself and reports false on failure.
func (s *Server) inRange(c *gin.Context) (service.State, analytics.DateRange, bool) {
	r, ok := s.rangeParam(c)
	if !ok {
		return service.State{}, r, false
	}
	state, err := service.LoadState(c.Request.Context(), s.store, &r)
	if err != nil {
		s.respondFailure(c, err)
		return service.State{}, r, false
	}
	return state, r, true
}

func (s *Server) trends(c *gin.Context) {
	window, ok := s.windowParam(c)
	if !ok {
		return
	}
	state, _, ok := s.inRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Trends(state.Weight, state.Sleep, window))
}

func (s *Server) correlation(c *gin.Context) {
	state, _, ok := s.inRange(c)
	if !ok {
		return
	}
	m, err := analytics.Correlation(state.Food, state.Weight)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "correlation": m})
}

func (s *Server) forecast(c *gin.Context) {
	state, r, ok := s.inRange(c)
	if !ok {
		return
	}
	fc, err := analytics.ForecastWeight(state.Weight, r.Start)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "forecast": fc})
}

func (s *Server) weekday(c *gin.Context) {
	state, _, ok := s.inRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekdays": analytics.WeekdayMeanCalories(state.Food)})
}

func (s *Server) summary(c *gin.Context) {
	state, r, ok := s.inRange(c)
	if !ok {
		return
	}
	body := gin.H{"summary": analytics.Summarize(state.Food, state.Weight, state.Sleep)}
	all, err := service.LoadState(c.Request.Context(), s.store, nil)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	if latest, ok := analytics.LatestWeightChange(all.Weight, s.now()); ok {
		body["latest_weight"] = latest
	}
	body["today_weights"] = analytics.OnDay(all.Weight, s.now())
	body["range"] = gin.H{"from": model.FormatDay(r.Start), "to": model.FormatDay(r.End)}
	c.JSON(http.StatusOK, body)
}

func (s *Server) dashboard(c *gin.Context) {
	window, ok := s.windowParam(c)
	if !ok {
		return
	}
	r, ok := s.rangeParam(c)
	if !ok {
		return
	}
	state, err := service.LoadState(c.Request.Context(), s.store, nil)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	d, err := service.BuildDashboard(state, r, window, s.now(), s.logger)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
