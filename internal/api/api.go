// internal/api/api.go
// Package api wires the HTTP surface: public voting endpoints and the
// bearer-token protected admin panel.
package api

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvgcolleges/voting-go/internal/auth"
	"github.com/mvgcolleges/voting-go/internal/ballot"
	"github.com/mvgcolleges/voting-go/internal/conf"
	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/errors"
	"github.com/mvgcolleges/voting-go/internal/logging"
	"github.com/mvgcolleges/voting-go/internal/observability"
	"github.com/mvgcolleges/voting-go/internal/tally"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Group     *echo.Group
	Settings  *conf.Settings
	Directory *contest.Directory
	Ledger    *ballot.Ledger
	Tally     *tally.Engine
	Auth      *auth.Service
	Metrics   *observability.Metrics

	apiLogger      *slog.Logger
	apiLevelVar    *slog.LevelVar
	apiLoggerClose func() error
	startTime      time.Time
}

// New creates the controller and registers all routes under /api.
func New(e *echo.Echo, settings *conf.Settings, directory *contest.Directory, ledger *ballot.Ledger, engine *tally.Engine, authSvc *auth.Service, metrics *observability.Metrics) *Controller {
	c := &Controller{
		Settings:    settings,
		Directory:   directory,
		Ledger:      ledger,
		Tally:       engine,
		Auth:        authSvc,
		Metrics:     metrics,
		apiLevelVar: new(slog.LevelVar),
		startTime:   time.Now(),
	}

	if settings.Server.Debug {
		c.apiLevelVar.Set(slog.LevelDebug)
	} else {
		c.apiLevelVar.Set(slog.LevelInfo)
	}

	logger, closeLogger, err := logging.NewFileLogger(filepath.Join("logs", "api.log"), "api", c.apiLevelVar)
	if err != nil {
		slog.Warn("Failed to initialize API file logger, using default logger", "error", err)
		logger = slog.Default().With("service", "api")
		closeLogger = func() error { return nil }
	}
	c.apiLogger = logger
	c.apiLoggerClose = closeLogger

	c.Group = e.Group("/api")
	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.initHealthRoutes()
	c.initContestantRoutes()
	c.initVoteRoutes()
	c.initAdminRoutes()

	if c.Metrics != nil {
		c.Group.GET("/metrics", echo.WrapHandler(c.Metrics.Handler()))
	}
}

// Shutdown releases controller resources.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		if err := c.apiLoggerClose(); err != nil {
			slog.Warn("Failed to close API log file", "error", err)
		}
	}
}

// envelope is the {"success": ...} body every endpoint responds with.
type envelope map[string]any

func ok(fields envelope) envelope {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// clientError returns a 4xx with a message that is safe to show the user.
func (c *Controller) clientError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Message: message})
}

// HandleError logs the failure with a correlation id and returns a generic
// message; internal detail never reaches the response body.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	correlationID := generateCorrelationID()

	attrs := []any{
		"correlation_id", correlationID,
		"message", message,
		"code", code,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP(),
		"error", err,
	}
	var ee *errors.EnhancedError
	if errors.As(err, &ee) {
		attrs = append(attrs, ee.LogAttrs()...)
		if ee.Category == errors.CategorySheets && c.Metrics != nil {
			c.Metrics.StoreErrors.Inc()
		}
	}
	c.apiLogger.Error("API error", attrs...)

	return ctx.JSON(code, ErrorResponse{
		Message:       message,
		CorrelationID: correlationID,
	})
}

// logRequest logs an API event with common request context.
func (c *Controller) logRequest(ctx echo.Context, level slog.Level, msg string, args ...any) {
	if c.apiLogger == nil {
		return
	}
	baseAttrs := []any{
		"path", ctx.Request().URL.Path,
		"ip", ctx.RealIP(),
	}
	baseAttrs = append(baseAttrs, args...)
	c.apiLogger.Log(ctx.Request().Context(), level, msg, baseAttrs...)
}

// initHealthRoutes registers the health endpoint.
func (c *Controller) initHealthRoutes() {
	c.Group.GET("/health", c.HealthCheck)
}

// HealthCheck handles GET /api/health.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, envelope{
		"status":    "OK",
		"version":   c.Settings.Version,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(c.startTime).Seconds(),
	})
}
