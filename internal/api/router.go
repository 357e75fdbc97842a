package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pawsreunite/pawsreunite-api/internal/api/handler"
	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Logger        zerolog.Logger
	Tokens        middleware.TokenVerifier
	Roles         ports.RoleResolver
	Users         ports.UserService
	Posts         ports.PostService
	Comments      ports.CommentService
	Notifications ports.NotificationService
	// Checks back the readiness probe, keyed by dependency name.
	Checks      map[string]handler.DependencyCheck
	CORSOrigins []string
	// Metrics receives the HTTP metrics. Nil uses the default registry.
	Metrics *prometheus.Registry
}

func (d Dependencies) registerer() prometheus.Registerer {
	if d.Metrics == nil {
		return prometheus.DefaultRegisterer
	}
	return d.Metrics
}

func (d Dependencies) gatherer() prometheus.Gatherer {
	if d.Metrics == nil {
		return prometheus.DefaultGatherer
	}
	return d.Metrics
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  corsOrigins(d.CORSOrigins),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "pawsreunite",
		Registerer: d.registerer(),
	}))
	e.Use(middleware.RequestState())

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.gatherer()}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "PawsReunite API"})
	})

	// --- Guards ---
	guards := handler.Guards{
		Auth:  middleware.Auth(d.Tokens, d.Roles, d.Logger),
		Admin: middleware.RoleRestrict(domain.RoleAdmin),
		Check: middleware.ErrorCheck(),
	}

	// --- Resources ---
	handler.NewUserHandler(d.Users).Register(e.Group("/users"), guards)
	handler.NewRoleHandler(d.Roles).Register(e.Group("/roles"), guards)
	handler.NewPostHandler(d.Posts).Register(e.Group("/posts"), guards)
	handler.NewCommentHandler(d.Comments).Register(e.Group("/comments"), guards)
	handler.NewNotificationHandler(d.Notifications).Register(e.Group("/notifications"), guards)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
