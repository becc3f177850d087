package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tidystash/inventory-system/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty username
// proves the middleware ran and the token carried a usable identity.
func ctxActor(c echo.Context) (ports.Actor, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	return ports.Actor{Username: username, Role: role}, nil
}
