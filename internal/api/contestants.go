// internal/api/contestants.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initContestantRoutes registers the public contestant listing.
func (c *Controller) initContestantRoutes() {
	c.Group.GET("/contestants", c.GetContestants)
}

// GetContestants handles GET /api/contestants. Only active contestants are
// visible to the public.
func (c *Controller) GetContestants(ctx echo.Context) error {
	contestants, err := c.Directory.List(ctx.Request().Context(), false)
	if err != nil {
		return c.HandleError(ctx, err, "Error loading contestants", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, ok(envelope{"contestants": contestants}))
}
