package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondFailure maps domain errors onto status codes. Unmet analytics
// thresholds are informational and answered with 200.
func (s *Server) respondFailure(c *gin.Context, err error) {
	if notice, ok := service.NoticeFor(err); ok {
		c.JSON(http.StatusOK, notice)
		return
	}
	switch {
	case errors.Is(err, analytics.ErrInvalidRange), errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrStore):
		s.logger.Error("store failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		respondError(c, http.StatusInternalServerError, err.Error())
	default:
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) rangeParam(c *gin.Context) (analytics.DateRange, bool) {
	r, err := service.ResolveRange(c.Query("from"), c.Query("to"), s.now())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return analytics.DateRange{}, false
	}
	return r, true
}

func (s *Server) windowParam(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("window"))
	if raw == "" {
		return s.window, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		respondError(c, http.StatusBadRequest, "window must be a positive integer")
		return 0, false
	}
	return n, true
}

func limitParam(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondError(c, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}
