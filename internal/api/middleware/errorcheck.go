package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorsResponse struct {
	Errors []string `json:"errors"`
}

// ErrorCheck ends the request with 400 and every collected message when any
// earlier middleware reported an error. A server fault ends it with 500.
func ErrorCheck() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := GetState(c)
			if st.Fault != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
			if len(st.Errors) > 0 {
				return c.JSON(http.StatusBadRequest, errorsResponse{Errors: st.Errors})
			}
			return next(c)
		}
	}
}
