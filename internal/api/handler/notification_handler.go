package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /notifications for the caller.
//
// @Summary      My notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Notification
// @Failure      400  {object}  errorsResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListForUser(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /notifications.
//
// @Summary      Send a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notificationRequest  true  "Notification"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  errorsResponse
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	req, ok := middleware.Body[notificationRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	n, err := h.service.Create(c.Request().Context(), ports.NotificationInput{
		UserID:  req.UserID,
		Message: req.Message,
		PostID:  req.PostID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}
