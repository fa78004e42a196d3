// Package server exposes logging and analytics over a JSON HTTP API for a
// browser front end.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/analytics"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

type Options struct {
	Store         service.Store
	Logger        *zap.Logger
	PhotoDir      string
	RollingWindow int
	Now           func() time.Time
}

type Server struct {
	store    service.Store
	logger   *zap.Logger
	photoDir string
	window   int
	now      func() time.Time
}

func New(opts Options) *Server {
	s := &Server{
		store:    opts.Store,
		logger:   opts.Logger,
		photoDir: opts.PhotoDir,
		window:   opts.RollingWindow,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.window <= 0 {
		s.window = analytics.DefaultWindow
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/food", s.createFood)
	api.GET("/food", s.listFood)
	api.POST("/weight", s.createWeight)
	api.GET("/weight", s.listWeight)
	api.POST("/sleep", s.createSleep)
	api.GET("/sleep", s.listSleep)
	api.POST("/photos", s.uploadPhoto)

	an := api.Group("/analytics")
	an.GET("/trends", s.trends)
	an.GET("/correlation", s.correlation)
	an.GET("/forecast", s.forecast)
	an.GET("/weekday", s.weekday)
	an.GET("/summary", s.summary)
	an.GET("/dashboard", s.dashboard)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
