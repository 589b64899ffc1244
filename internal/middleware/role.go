package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edurelief/edurelief-backend/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user's role is a member of the given set.  It assumes JWTAuth already ran
// and stored a model.Role under ContextRole; a missing or foreign value is
// treated as forbidden.  Requests from other roles are rejected with 403 so
// the caller can tell "logged in but not allowed" apart from "not logged in".
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(model.Role)
			if !ok || !role.In(roles...) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
