package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// ctxActor returns the caller attached by the Auth middleware. A request that
// reaches a handler without an identity is answered with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.UserID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return ports.Actor{UserID: id.UserID, Role: id.Role}, nil
}

// forbidden renders the ownership failure for action on resource.
func forbidden(c echo.Context, action, resource string) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error": fmt.Sprintf("You are not authorized to %s this %s.", action, resource),
	})
}
