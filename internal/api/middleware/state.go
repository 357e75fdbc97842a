package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

const stateKey = "request_state"

// Public messages collected by the guards.
const (
	MsgUnauthorized = "Unauthorized"
	MsgTokenExpired = "Token expired"
)

// Identity is the authenticated caller attached to a request by Auth.
type Identity struct {
	User   *domain.User
	UserID string
	Role   string
}

// State accumulates the outcome of the middleware chain for one request.
// ErrorCheck turns a non-empty Errors list into a 400 response.
type State struct {
	Errors   []string
	Identity *Identity
	// Token is the refreshed bearer token issued for this request.
	Token string
	// Fault records a server-side failure found while authenticating.
	Fault error
	// Body is the request payload decoded by ValidateBody.
	Body any
}

func (s *State) AddError(msg ...string) {
	s.Errors = append(s.Errors, msg...)
}

func (s *State) hasError(msg string) bool {
	for _, m := range s.Errors {
		if m == msg {
			return true
		}
	}
	return false
}

// RequestState attaches an empty State to every request.
func RequestState() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(stateKey, &State{})
			return next(c)
		}
	}
}

// GetState returns the request's State, creating it when RequestState did
// not run.
func GetState(c echo.Context) *State {
	if st, ok := c.Get(stateKey).(*State); ok {
		return st
	}
	st := &State{}
	c.Set(stateKey, st)
	return st
}

// CurrentIdentity returns the identity attached by Auth, if any.
func CurrentIdentity(c echo.Context) (*Identity, bool) {
	st, ok := c.Get(stateKey).(*State)
	if !ok || st.Identity == nil {
		return nil, false
	}
	return st.Identity, true
}

// Body returns the payload decoded by ValidateBody[T].
func Body[T any](c echo.Context) (*T, bool) {
	body, ok := GetState(c).Body.(*T)
	return body, ok
}
