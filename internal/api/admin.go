// internal/api/admin.go
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/errors"
)

// initAdminRoutes registers the admin panel endpoints. Everything except
// login sits behind the bearer-token middleware.
func (c *Controller) initAdminRoutes() {
	admin := c.Group.Group("/admin")
	admin.POST("/login", c.AdminLogin)

	protected := admin.Group("", c.Auth.Middleware())
	protected.GET("/overview", c.AdminOverview)
	protected.GET("/contestants", c.AdminListContestants)
	protected.POST("/contestants", c.AdminCreateContestant)
	protected.PUT("/contestants/:id", c.AdminUpdateContestant)
	protected.DELETE("/contestants/:id", c.AdminDeleteContestant)
	protected.GET("/voters", c.AdminListVoters)
}

// loginRequest is the admin login body.
type loginRequest struct {
	Password string `json:"password"`
}

// AdminLogin handles POST /api/admin/login.
func (c *Controller) AdminLogin(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	token, err := c.Auth.Login(req.Password)
	if err != nil {
		c.logRequest(ctx, slog.LevelWarn, "Admin login rejected")
		return c.clientError(ctx, http.StatusUnauthorized, "Invalid password")
	}

	c.logRequest(ctx, slog.LevelInfo, "Admin login successful")
	return ctx.JSON(http.StatusOK, ok(envelope{
		"token":   token,
		"message": "Login successful",
	}))
}

// AdminOverview handles GET /api/admin/overview.
func (c *Controller) AdminOverview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	contestants, err := c.Directory.List(reqCtx, true)
	if err != nil {
		return c.HandleError(ctx, err, "Error loading overview", http.StatusInternalServerError)
	}
	votes, err := c.Ledger.List(reqCtx)
	if err != nil {
		return c.HandleError(ctx, err, "Error loading overview", http.StatusInternalServerError)
	}

	active := 0
	for _, contestant := range contestants {
		if contestant.Status.Active() {
			active++
		}
	}

	return ctx.JSON(http.StatusOK, ok(envelope{
		"totalVotes":        len(votes),
		"totalContestants":  len(contestants),
		"activeContestants": active,
	}))
}

// AdminListContestants handles GET /api/admin/contestants, inactive included.
func (c *Controller) AdminListContestants(ctx echo.Context) error {
	contestants, err := c.Directory.List(ctx.Request().Context(), true)
	if err != nil {
		return c.HandleError(ctx, err, "Error loading contestants", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, ok(envelope{"contestants": contestants}))
}

// contestantRequest is the create/update body. Active defaults to true when
// omitted, matching the admin form behavior.
type contestantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	ImageURL    string `json:"imageUrl"`
}

func (r *contestantRequest) toInput() *contest.Input {
	status := contest.StatusActive
	if r.Active != nil && !*r.Active {
		status = contest.StatusInactive
	}
	return &contest.Input{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Status:      status,
		ImageURL:    strings.TrimSpace(r.ImageURL),
	}
}

// AdminCreateContestant handles POST /api/admin/contestants.
func (c *Controller) AdminCreateContestant(ctx echo.Context) error {
	var req contestantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.clientError(ctx, http.StatusBadRequest, "Contestant name is required")
	}

	created, err := c.Directory.Create(ctx.Request().Context(), req.toInput())
	if err != nil {
		return c.HandleError(ctx, err, "Error adding contestant", http.StatusInternalServerError)
	}

	c.logRequest(ctx, slog.LevelInfo, "Contestant created", "contestant_id", created.ID)
	return ctx.JSON(http.StatusOK, ok(envelope{
		"message":    "Contestant added successfully",
		"contestant": created,
	}))
}

// AdminUpdateContestant handles PUT /api/admin/contestants/:id.
func (c *Controller) AdminUpdateContestant(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid contestant id")
	}

	var req contestantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.clientError(ctx, http.StatusBadRequest, "Contestant name is required")
	}

	updated, err := c.Directory.Update(ctx.Request().Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return c.clientError(ctx, http.StatusNotFound, "Contestant not found")
		}
		return c.HandleError(ctx, err, "Error updating contestant", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, ok(envelope{
		"message":    "Contestant updated successfully",
		"contestant": updated,
	}))
}

// AdminDeleteContestant handles DELETE /api/admin/contestants/:id. Deletion
// is a soft delete: the row stays, only the active flag flips.
func (c *Controller) AdminDeleteContestant(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return c.clientError(ctx, http.StatusBadRequest, "Invalid contestant id")
	}

	if err := c.Directory.Deactivate(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return c.clientError(ctx, http.StatusNotFound, "Contestant not found")
		}
		return c.HandleError(ctx, err, "Error deleting contestant", http.StatusInternalServerError)
	}

	c.logRequest(ctx, slog.LevelInfo, "Contestant deactivated", "contestant_id", id)
	return ctx.JSON(http.StatusOK, ok(envelope{"message": "Contestant deleted successfully"}))
}

// AdminListVoters handles GET /api/admin/voters.
func (c *Controller) AdminListVoters(ctx echo.Context) error {
	voters, err := c.Tally.VotersWithNames(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Error loading voters", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, ok(envelope{"voters": voters}))
}
