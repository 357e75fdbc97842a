package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Signup creates a regular account.
//
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorsResponse
// @Router       /users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	req, ok := middleware.Body[signupRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.users.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if msg, ok := accountConflict(err); ok {
			return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{msg}})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// Signin exchanges credentials for a token.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorsResponse
// @Router       /users/signin [post]
func (h *UserHandler) Signin(c echo.Context) error {
	req, ok := middleware.Body[signinRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.users.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{"Invalid email or password"}})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      400  {object}  errorsResponse
// @Router       /users/all [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one account. Users may only read their own account unless
// they are admins.
//
// @Summary      Account details
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  domain.User
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	userID := c.Param("userId")
	if !domain.CanMutate(actor.UserID, userID, actor.Role) {
		return forbidden(c, "view", "account")
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits the caller's own profile and returns a new token.
//
// @Summary      Edit profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorsResponse
// @Router       /users [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	req, ok := middleware.Body[updateUserRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.users.EditProfile(c.Request().Context(), actor.UserID, ports.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if msg, ok := accountConflict(err); ok {
			return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{msg}})
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+res.Token)
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// Delete removes an account and everything it owns.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorsResponse
// @Failure      404     {object}  map[string]string
// @Router       /users/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}

// AssignRole moves a user to another role.
//
// @Summary      Assign role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User ID"
// @Param        body    body      assignRoleRequest  true  "Role name"
// @Success      200     {object}  domain.User
// @Failure      400     {object}  errorsResponse
// @Failure      404     {object}  map[string]string
// @Router       /users/{userId}/role [put]
func (h *UserHandler) AssignRole(c echo.Context) error {
	req, ok := middleware.Body[assignRoleRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.AssignRole(c.Request().Context(), c.Param("userId"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func accountConflict(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "Username already exists", true
	case errors.Is(err, domain.ErrEmailExists):
		return "Email already exists", true
	}
	return "", false
}
