package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloghub/blog-system/internal/api/metrics"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations. All routes sit
// behind the Auth middleware.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Publish handles POST /posts/publish.
//
// @Summary      Publish a new post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      publishPostRequest  true  "Post fields"
// @Success      201   {object}  apiResponse
// @Failure      401   {object}  apiResponse
// @Router       /posts/publish [post]
func (h *PostHandler) Publish(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req publishPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Message: "invalid payload"})
	}

	_, err = h.posts.Publish(c.Request().Context(), claim.SubjectID, ports.PublishPostInput{
		Title:    req.Title,
		Content:  req.Content,
		IsHidden: req.IsHidden,
	})
	if err != nil {
		return postError(c, err)
	}

	metrics.PostOperationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, apiResponse{Message: msgPostCreated, Errors: []string{}})
}

// Get handles GET /posts/:id. A hidden post a requester may not see is
// reported as not found, never as forbidden.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.Request().Context(), claim.SubjectID, c.Param("id"))
	if err != nil {
		return postError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{
		Message: msgPostRetrieved,
		Errors:  []string{},
		Data:    toPostData(post),
	})
}

// Update handles PUT /posts/:id. Only the supplied fields are merged; an
// empty payload is a successful no-op.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to update"
// @Success      200   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Message: "invalid payload"})
	}

	changed, err := h.posts.Update(c.Request().Context(), claim.SubjectID, c.Param("id"), ports.PostPatch{
		Title:    req.Title,
		Content:  req.Content,
		IsHidden: req.IsHidden,
	})
	if err != nil {
		return postError(c, err)
	}

	if changed {
		metrics.PostOperationsTotal.WithLabelValues("updated").Inc()
	}
	return c.JSON(http.StatusOK, apiResponse{Message: msgPostUpdated, Errors: []string{}})
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      404  {object}  apiResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), claim.SubjectID, c.Param("id")); err != nil {
		return postError(c, err)
	}

	metrics.PostOperationsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /posts — all visible posts, newest first.
//
// @Summary      List visible posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	if _, err := ctxClaim(c); err != nil {
		return err
	}

	posts, err := h.posts.ListVisible(c.Request().Context())
	if err != nil {
		return postError(c, err)
	}
	if len(posts) == 0 {
		return c.JSON(http.StatusNotFound, apiResponse{Message: msgPostNotFound})
	}

	data := make([]postData, 0, len(posts))
	for i := range posts {
		data = append(data, toPostData(&posts[i]))
	}
	return c.JSON(http.StatusOK, apiResponse{
		Message: msgPostsRetrieved,
		Errors:  []string{},
		Data:    data,
	})
}

// Activity handles GET /posts/:id/activity — the audit trail, owner only.
//
// @Summary      Get a post's activity trail
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /posts/{id}/activity [get]
func (h *PostHandler) Activity(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	entries, err := h.posts.Activity(c.Request().Context(), claim.SubjectID, c.Param("id"))
	if err != nil {
		return postError(c, err)
	}

	data := make([]activityData, 0, len(entries))
	for _, e := range entries {
		data = append(data, activityData{
			ID:        e.ID,
			Action:    e.Action,
			ActorID:   e.ActorID,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, apiResponse{
		Message: msgPostsRetrieved,
		Errors:  []string{},
		Data:    data,
	})
}

// postError maps service errors to the response envelope.
func postError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnauthorized, apiResponse{
			Message: msgInvalidFields,
			Errors:  ve.Fields,
		})
	}
	if errors.Is(err, domain.ErrPostNotFound) {
		return c.JSON(http.StatusNotFound, apiResponse{Message: msgPostNotFound})
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, apiResponse{Message: "No user was found"})
	}
	return err
}

func toPostData(p *domain.Post) postData {
	return postData{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		IsHidden:  p.IsHidden,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
