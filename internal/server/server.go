// Package server exposes the engine over a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/clock"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/storage"
	"github.com/julianstephens/levelup/internal/tracker"
	"github.com/julianstephens/levelup/internal/willpower"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the handlers call into.
type Deps struct {
	Store     storage.Provider
	Catalog   *catalog.Catalog
	Engine    *willpower.Engine
	Lifecycle *willpower.Lifecycle
	Tracker   *tracker.Tracker
	Metrics   *metrics.Metrics
	Clock     clock.Clock
}

type Server struct {
	Deps
	echo *echo.Echo
}

func New(d Deps) *Server {
	if d.Clock == nil {
		d.Clock = clock.System
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	s := &Server{Deps: d, echo: e}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warn("Request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			logger.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))

	api := e.Group("/api/v1")
	api.GET("/catalog", s.listCatalog)
	api.POST("/users", s.createUser)
	api.GET("/users/:id", s.getUser)
	api.GET("/users/:id/habits", s.listHabits)
	api.POST("/users/:id/habits", s.activateHabits)
	api.DELETE("/users/:id/habits/:activeId", s.deactivateHabit)
	api.POST("/users/:id/completions", s.completeHabit)
	api.GET("/users/:id/suggestion", s.getSuggestion)
	api.POST("/users/:id/suggestion/apply", s.applySuggestion)
	api.POST("/users/:id/suggestion/dismiss", s.dismissSuggestion)

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request error", "path", c.Path(), "error", err)
		msg = http.StatusText(status)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, errorResponse{Error: msg})
	}
	if werr != nil {
		logger.Error("Failed to write error response", "error", werr)
	}
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": s.Store.GetConfigPath()})
}
