// internal/api/vote.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvgcolleges/voting-go/internal/ballot"
	"github.com/mvgcolleges/voting-go/internal/errors"
)

// User-facing messages for the vote path. Wording stays generic for store
// failures and actionable for conditions the voter can fix.
const (
	msgDuplicateVote = "You have already voted. Each email and mobile number can only vote once."
	msgBadContestant = "Invalid candidate selected"
	msgVoteFailed    = "An error occurred while submitting your vote. Please try again."
	msgVoteAccepted  = "Vote submitted successfully"
)

// initVoteRoutes registers the vote submission and results endpoints.
func (c *Controller) initVoteRoutes() {
	c.Group.POST("/vote", c.SubmitVote)
	c.Group.GET("/results", c.GetResults)
}

// SubmitVote handles POST /api/vote. Validation runs before any store
// access; the ledger enforces the one-vote-per-identity invariant.
func (c *Controller) SubmitVote(ctx echo.Context) error {
	var submission ballot.Submission
	if err := ctx.Bind(&submission); err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	normalized, err := ballot.Validate(&submission, c.Settings.Ballot.RequireGuardian)
	if err != nil {
		var verr *ballot.ValidationError
		if errors.As(err, &verr) {
			if c.Metrics != nil {
				c.Metrics.ValidationRejected.Inc()
			}
			c.logRequest(ctx, slog.LevelDebug, "Vote rejected by validation",
				"code", verr.Code, "field", verr.Field)
			return c.clientError(ctx, http.StatusBadRequest, verr.Message)
		}
		return c.HandleError(ctx, err, msgVoteFailed, http.StatusInternalServerError)
	}

	vote, err := c.Ledger.Submit(ctx.Request().Context(), normalized, ctx.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrDuplicateVote):
			if c.Metrics != nil {
				c.Metrics.DuplicatesRejected.Inc()
			}
			return c.clientError(ctx, http.StatusBadRequest, msgDuplicateVote)
		case errors.Is(err, errors.ErrInvalidContestant):
			return c.clientError(ctx, http.StatusBadRequest, msgBadContestant)
		default:
			return c.HandleError(ctx, err, msgVoteFailed, http.StatusInternalServerError)
		}
	}

	if c.Metrics != nil {
		c.Metrics.VotesAccepted.Inc()
	}
	c.logRequest(ctx, slog.LevelInfo, "Vote accepted",
		"contestant_id", vote.ContestantID)
	return ctx.JSON(http.StatusOK, ok(envelope{"message": msgVoteAccepted}))
}

// GetResults handles GET /api/results. Counts are derived fresh on every
// call; nothing is cached.
func (c *Controller) GetResults(ctx echo.Context) error {
	results, err := c.Tally.Results(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Error loading results", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, ok(envelope{
		"totalVotes": results.TotalVotes,
		"results":    results.Results,
	}))
}
