package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /comments, optionally narrowed with ?postId=.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        postId  query   string  false  "Post ID"
// @Success      200     {array}  domain.Comment
// @Router       /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.service.List(c.Request().Context(), c.QueryParam("postId"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

// Get handles GET /comments/:commentId.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  domain.Comment
// @Failure      404        {object}  map[string]string
// @Router       /comments/{commentId} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.service.Get(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Create handles POST /comments/:postId.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string          true  "Post ID"
// @Param        body    body      commentRequest  true  "Comment"
// @Success      201     {object}  domain.Comment
// @Failure      400     {object}  errorsResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /comments/{postId} [post]
func (h *CommentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	req, ok := middleware.Body[commentRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.service.Create(c.Request().Context(), actor, c.Param("postId"), req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return forbidden(c, "create", "comment")
		}
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Delete handles DELETE /comments/:commentId.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  domain.Comment
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	comment, err := h.service.Delete(c.Request().Context(), actor, c.Param("commentId"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return forbidden(c, "delete", "comment")
		}
		return err
	}
	return c.JSON(http.StatusOK, comment)
}
