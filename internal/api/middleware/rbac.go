package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/metrics"
)

// RoleRestrict records "Unauthorized" unless the identity attached by Auth
// holds role. It must run after Auth and before ErrorCheck.
func RoleRestrict(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := GetState(c)
			if st.Identity != nil && st.Identity.Role == role {
				return next(c)
			}
			// A failed Auth has already reported the request.
			if st.Identity == nil && st.hasError(MsgUnauthorized) {
				return next(c)
			}
			metrics.AuthFailuresTotal.WithLabelValues("role").Inc()
			st.AddError(MsgUnauthorized)
			return next(c)
		}
	}
}
