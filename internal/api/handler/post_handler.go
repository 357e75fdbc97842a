package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsreunite/pawsreunite-api/internal/api/metrics"
	"github.com/pawsreunite/pawsreunite-api/internal/api/middleware"
	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

// PostHandler handles HTTP requests for lost and found posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts with optional filters.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        species  query     string  false  "Species"
// @Param        breed    query     string  false  "Breed"
// @Param        color    query     string  false  "Colour"
// @Param        suburb   query     string  false  "Suburb"
// @Param        status   query     string  false  "lost or found"
// @Success      200      {array}   postResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context(), domain.PostFilter{
		Species: c.QueryParam("species"),
		Breed:   c.QueryParam("breed"),
		Color:   c.QueryParam("color"),
		Suburb:  c.QueryParam("suburb"),
		Status:  c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// ListByUser handles GET /posts/user/:userId.
//
// @Summary      Posts of a user
// @Tags         posts
// @Produce      json
// @Param        userId  path   string  true  "User ID"
// @Success      200     {array}  postResponse
// @Router       /posts/user/{userId} [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context(), domain.PostFilter{UserID: c.Param("userId")})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Breeds handles GET /posts/breeds.
//
// @Summary      Known breeds by species
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.SpeciesBreeds
// @Router       /posts/breeds [get]
func (h *PostHandler) Breeds(c echo.Context) error {
	breeds, err := h.service.Breeds(c.Request().Context())
	if err != nil {
		return err
	}
	if breeds == nil {
		breeds = []domain.SpeciesBreeds{}
	}
	return c.JSON(http.StatusOK, breeds)
}

// Filter handles GET /posts/filter. The field is read from ?field= and, for
// older clients, from ?status=.
//
// @Summary      Distinct values of a post field
// @Tags         posts
// @Produce      json
// @Param        field   query     string  true  "species, breed, color, suburb or status"
// @Success      200     {object}  distinctResponse
// @Failure      400     {object}  map[string]string
// @Router       /posts/filter [get]
func (h *PostHandler) Filter(c echo.Context) error {
	field := c.QueryParam("field")
	if field == "" {
		field = c.QueryParam("status")
	}
	values, err := h.service.Distinct(c.Request().Context(), field)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, distinctResponse{Data: values})
}

// Get handles GET /posts/:postId.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "Post ID"
// @Success      200     {object}  postResponse
// @Failure      404     {object}  map[string]string
// @Router       /posts/{postId} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorsResponse
// @Failure      403   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	req, ok := middleware.Body[postRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return forbidden(c, "create", "post")
		}
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Status)).Inc()
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update handles PUT /posts/:postId.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string             true  "Post ID"
// @Param        body    body      updatePostRequest  true  "Fields to change"
// @Success      200     {object}  postResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /posts/{postId} [put]
func (h *PostHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	req, ok := middleware.Body[updatePostRequest](c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Update(c.Request().Context(), actor, c.Param("postId"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return forbidden(c, "update", "post")
		}
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /posts/:postId.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID"
// @Success      200     {object}  postResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /posts/{postId} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	post, err := h.service.Delete(c.Request().Context(), actor, c.Param("postId"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return forbidden(c, "delete", "post")
		}
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}
