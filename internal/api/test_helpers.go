// internal/api/test_helpers.go
package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvgcolleges/voting-go/internal/auth"
	"github.com/mvgcolleges/voting-go/internal/ballot"
	"github.com/mvgcolleges/voting-go/internal/conf"
	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/observability"
	"github.com/mvgcolleges/voting-go/internal/sheetstore"
	"github.com/mvgcolleges/voting-go/internal/tally"
)

// newTestController builds a controller over the given store with routing
// fully registered, for tests that drive requests through e.ServeHTTP.
func newTestController(store sheetstore.RowStore) (*echo.Echo, *Controller) {
	settings := &conf.Settings{Version: "test"}
	settings.Sheets.ContestantsSheet = "Contestants"
	settings.Sheets.VotesSheet = "Votes"
	settings.Admin.Password = "admin123"
	settings.Admin.TokenTTL = time.Hour
	settings.Ballot.RequireGuardian = true

	directory := contest.NewDirectory(store, settings.Sheets.ContestantsSheet)
	ledger := ballot.NewLedger(store, directory, settings.Sheets.VotesSheet, time.UTC, true)
	engine := tally.NewEngine(directory, ledger)
	authSvc := auth.NewService(settings.Admin.Password, settings.Admin.TokenTTL)
	metrics := observability.NewMetrics()

	e := echo.New()
	controller := New(e, settings, directory, ledger, engine, authSvc, metrics)
	return e, controller
}
