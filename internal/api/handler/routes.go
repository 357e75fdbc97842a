package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
)

// Guards are the route-level middleware shared by every handler.
type Guards struct {
	// Auth attaches the caller's identity.
	Auth echo.MiddlewareFunc
	// Admin restricts a route to admins. It must follow Auth.
	Admin echo.MiddlewareFunc
	// Check ends the request when an earlier guard reported errors.
	Check echo.MiddlewareFunc
}

func (h *UserHandler) Register(g *echo.Group, m Guards) {
	g.POST("/signup", h.Signup, middleware.ValidateBody[signupRequest](), m.Check)
	g.POST("/signin", h.Signin, middleware.ValidateBody[signinRequest](), m.Check)
	g.GET("/all", h.List, m.Auth, m.Admin, m.Check)
	g.GET("/:userId", h.Get, m.Auth, m.Check)
	g.PUT("", h.Update, m.Auth, middleware.ValidateBody[updateUserRequest](), m.Check)
	g.DELETE("/:userId", h.Delete, m.Auth, m.Admin, m.Check)
	g.PUT("/:userId/role", h.AssignRole, m.Auth, m.Admin, middleware.ValidateBody[assignRoleRequest](), m.Check)
}

func (h *RoleHandler) Register(g *echo.Group, m Guards) {
	g.GET("", h.List)
	g.GET("/:roleName", h.UsersInRole, m.Auth, m.Admin, m.Check)
}

func (h *PostHandler) Register(g *echo.Group, m Guards) {
	g.GET("", h.List)
	g.GET("/filter", h.Filter)
	g.GET("/breeds", h.Breeds)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/:postId", h.Get)
	g.POST("", h.Create, m.Auth, middleware.ValidateBody[postRequest](), m.Check)
	g.PUT("/:postId", h.Update, m.Auth, middleware.ValidateBody[updatePostRequest](), m.Check)
	g.DELETE("/:postId", h.Delete, m.Auth, m.Check)
}

func (h *CommentHandler) Register(g *echo.Group, m Guards) {
	g.GET("", h.List)
	g.GET("/:commentId", h.Get)
	g.POST("/:postId", h.Create, m.Auth, middleware.ValidateBody[commentRequest](), m.Check)
	g.DELETE("/:commentId", h.Delete, m.Auth, m.Check)
}

func (h *NotificationHandler) Register(g *echo.Group, m Guards) {
	g.GET("", h.List, m.Auth, m.Check)
	g.POST("", h.Create, m.Auth, m.Admin, middleware.ValidateBody[notificationRequest](), m.Check)
}
