// Package serve implements the serve command, the HTTP server hosting the
// voting API and the static frontend.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/mvgcolleges/voting-go/internal/api"
	"github.com/mvgcolleges/voting-go/internal/auth"
	"github.com/mvgcolleges/voting-go/internal/ballot"
	"github.com/mvgcolleges/voting-go/internal/conf"
	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/logging"
	"github.com/mvgcolleges/voting-go/internal/observability"
	"github.com/mvgcolleges/voting-go/internal/sheetstore"
	"github.com/mvgcolleges/voting-go/internal/tally"
)

const shutdownTimeout = 10 * time.Second

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the voting web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), settings)
		},
	}
}

func runServer(ctx context.Context, settings *conf.Settings) error {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := sheetstore.New(ctx, &settings.Sheets)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	store.SetDebug(settings.Debug)
	defer func() {
		if err := sheetstore.Close(); err != nil {
			slog.Warn("Failed to close sheets log", "error", err)
		}
	}()

	location, err := time.LoadLocation(settings.Sheets.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	directory := contest.NewDirectory(store, settings.Sheets.ContestantsSheet)
	ledger := ballot.NewLedger(store, directory, settings.Sheets.VotesSheet, location, settings.Ballot.RequireGuardian)
	engine := tally.NewEngine(directory, ledger)
	authSvc := auth.NewService(settings.Admin.Password, settings.Admin.TokenTTL)
	metrics := observability.NewMetrics()

	e := newEcho(settings)
	controller := api.New(e, settings, directory, ledger, engine, authSvc, metrics)
	defer controller.Shutdown()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", settings.Server.Port)
		slog.Info("Listening", "addr", addr, "frontend", settings.Server.FrontendDir)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	case <-ctx.Done():
		slog.Info("Shutting down", "reason", "context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// newEcho builds the echo instance with the middleware stack.
func newEcho(settings *conf.Settings) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())

	if settings.Server.CORS.Enabled {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: settings.Server.CORS.Origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		}))
	}

	if settings.Server.RateLimit.Enabled {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(settings.Server.RateLimit.RequestsPerMinute) / 60.0),
				Burst:     settings.Server.RateLimit.Burst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	if settings.Server.FrontendDir != "" {
		e.Static("/", settings.Server.FrontendDir)
	}

	return e
}

// requestLogger logs each request through slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"ip", c.RealIP(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.Error("request", attrs...)
				return nil
			}
			slog.Info("request", attrs...)
			return nil
		},
	})
}
