package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

type RoleHandler struct {
	roles ports.RoleResolver
}

func NewRoleHandler(roles ports.RoleResolver) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List returns every role.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}  domain.Role
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// UsersInRole lists the members of a role. An unknown role has no members.
//
// @Summary      Users in role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        roleName  path      string  true  "Role name"
// @Success      200       {array}   domain.User
// @Failure      400       {object}  errorsResponse
// @Router       /roles/{roleName} [get]
func (h *RoleHandler) UsersInRole(c echo.Context) error {
	users, err := h.roles.UsersInRole(c.Request().Context(), c.Param("roleName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
