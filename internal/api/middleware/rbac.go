package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects any request whose token role is not the given one.
// Must run after Auth, which injects the role claim.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get("role").(string)
			if got != role {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
