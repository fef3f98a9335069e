// Package httpapi exposes the tracker as a JWT-authenticated REST API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pomodoro-tracker/internal/auth"
	"pomodoro-tracker/internal/config"
	"pomodoro-tracker/internal/service"
)

// Services bundles everything the handlers call into.
type Services struct {
	Auth       *service.AuthService
	Tasks      *service.TaskService
	Categories *service.CategoryService
	Tags       *service.TagService
	Pomodoro   *service.PomodoroService
	Analytics  *service.AnalyticsService
}

// Server wires the echo router, middleware and handlers.
type Server struct {
	echo     *echo.Echo
	logger   *zap.Logger
	cfg      *config.Config
	loc      *time.Location
	tokens   *auth.TokenManager
	services Services
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg *config.Config, logger *zap.Logger, loc *time.Location, tokens *auth.TokenManager, services Services) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}
	if loc == nil {
		loc = time.Local
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		logger:   logger,
		cfg:      cfg,
		loc:      loc,
		tokens:   tokens,
		services: services,
	}

	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	authGroup := s.echo.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.GET("/user", s.handleGetUser, s.requireAuth)
	authGroup.GET("/settings", s.handleGetSettings, s.requireAuth)
	authGroup.PUT("/settings", s.handleUpdateSettings, s.requireAuth)

	tasks := s.echo.Group("/tasks", s.requireAuth)
	tasks.GET("/", s.handleListTasks)
	tasks.POST("/", s.handleCreateTask)
	tasks.GET("/categories/", s.handleListCategories)
	tasks.POST("/categories/", s.handleCreateCategory)
	tasks.PUT("/categories/:id", s.handleUpdateCategory)
	tasks.DELETE("/categories/:id", s.handleDeleteCategory)
	tasks.GET("/tags/", s.handleListTags)
	tasks.POST("/tags/", s.handleCreateTag)
	tasks.PUT("/tags/:id", s.handleUpdateTag)
	tasks.DELETE("/tags/:id", s.handleDeleteTag)
	tasks.GET("/:id", s.handleGetTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)
	tasks.POST("/:id/complete", s.handleCompleteTask)

	pomodoro := s.echo.Group("/pomodoro", s.requireAuth)
	pomodoro.POST("/start", s.handleStartSession)
	pomodoro.PUT("/:id/complete", s.handleCompleteSession)
	pomodoro.GET("/history", s.handleSessionHistory)
	pomodoro.GET("/stats", s.handleSessionStats)
	pomodoro.DELETE("/:id", s.handleDeleteSession)

	analytics := s.echo.Group("/analytics", s.requireAuth)
	analytics.GET("/dashboard", s.handleDashboard)
	analytics.POST("/date-range", s.handleDateRange)
	analytics.GET("/tasks/:id/analytics", s.handleTaskAnalytics)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
