package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/api/metrics"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/security"
)

// TokenVerifier verifies a bearer token and returns a refreshed one.
type TokenVerifier interface {
	VerifyAndRefresh(ctx context.Context, token string) (*security.Refreshed, error)
}

// RoleLookup resolves the role a user holds.
type RoleLookup interface {
	RoleOf(ctx context.Context, user *domain.User) (*domain.Role, error)
}

// ExtractToken returns the credential of a "Bearer <token>" header.
func ExtractToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Auth verifies and refreshes the bearer token, then attaches the caller's
// identity to the request state. The refreshed token is returned in the
// Authorization response header.
//
// Auth never rejects a request itself: failures are collected in the state
// and reported by ErrorCheck.
func Auth(tokens TokenVerifier, roles RoleLookup, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := GetState(c)
			ctx := c.Request().Context()

			raw, ok := ExtractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				reject(st, "missing_token", MsgUnauthorized)
				return next(c)
			}

			refreshed, err := tokens.VerifyAndRefresh(ctx, raw)
			if err != nil {
				reason, msg := classify(err)
				if reason == "" {
					log.Error().Err(err).Str("path", c.Path()).Msg("token verification failed")
					st.Fault = err
					return next(c)
				}
				log.Warn().Err(err).Str("reason", reason).Str("path", c.Path()).Msg("authentication rejected")
				reject(st, reason, msg)
				return next(c)
			}

			role, err := roles.RoleOf(ctx, refreshed.User)
			if err != nil {
				log.Error().Err(err).Str("user_id", refreshed.User.ID).Msg("cannot resolve role")
				st.Fault = err
				return next(c)
			}

			st.Identity = &Identity{
				User:   refreshed.User,
				UserID: refreshed.User.ID,
				Role:   role.Name,
			}
			st.Token = refreshed.Token
			c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+refreshed.Token)
			metrics.TokensRefreshedTotal.Inc()

			return next(c)
		}
	}
}

// classify maps a verification error to a metric reason and a public
// message. An empty reason means the error is not the caller's fault.
func classify(err error) (reason, msg string) {
	switch {
	case errors.Is(err, security.ErrTokenExpired):
		return "expired", MsgTokenExpired
	case errors.Is(err, security.ErrDecryption):
		return "decryption", MsgUnauthorized
	case errors.Is(err, security.ErrTokenInvalid):
		return "invalid_token", MsgUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user", MsgUnauthorized
	}
	return "", ""
}

func reject(st *State, reason, msg string) {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	st.AddError(msg)
}
