package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// messenger is implemented by validation errors that carry one message per
// failed field.
type messenger interface {
	Messages() []string
}

// ValidateBody decodes the request into a new T and validates it with the
// echo Validator. Problems are collected in the request state; the decoded
// value is available to the handler through Body[T].
func ValidateBody[T any]() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := GetState(c)
			body := new(T)
			if err := c.Bind(body); err != nil {
				st.AddError("Invalid request body")
				return next(c)
			}
			st.Body = body

			if err := c.Validate(body); err != nil {
				var m messenger
				if errors.As(err, &m) {
					st.AddError(m.Messages()...)
				} else {
					st.AddError(err.Error())
				}
			}
			return next(c)
		}
	}
}
