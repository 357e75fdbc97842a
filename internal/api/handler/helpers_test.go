package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
)

const (
	aliceID = "65a1b2c3d4e5f60718293a4b"
	bobID   = "65a1b2c3d4e5f60718293a4c"
	adminID = "65a1b2c3d4e5f60718293a4d"
)

func newTestContext(method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

// as attaches an identity the way the Auth middleware does.
func as(c echo.Context, userID, role string) {
	middleware.GetState(c).Identity = &middleware.Identity{UserID: userID, Role: role}
}

// serve runs h behind the given middleware and routes a returned error
// through echo's error handler.
func serve(t *testing.T, e *echo.Echo, c echo.Context, h echo.HandlerFunc, mws ...echo.MiddlewareFunc) {
	t.Helper()
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
}
