package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/rest/request"
	"github.com/GhostMEn20034/small-social-network/internal/rest/response"
)

// PostHandler represent the http handler for posts
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// Store will store the post by given request body
func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: verr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	post := req.ToDomain()
	post.Title = sanitizer.Sanitize(post.Title)
	post.Content = sanitizer.Sanitize(post.Content)

	if err := h.Service.Store(c.Request.Context(), user, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// FetchAll lists all posts with their authors
func (h *PostHandler) FetchAll(c *gin.Context) {
	posts, err := h.Service.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(posts))
	for i := range posts {
		res[i] = response.NewPostFromDomain(&posts[i])
	}
	c.JSON(http.StatusOK, res)
}

// FetchOwn lists the requester's posts
func (h *PostHandler) FetchOwn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.Service.FetchOwn(c.Request.Context(), user)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(posts))
	for i := range posts {
		res[i] = response.NewPostFromDomain(&posts[i])
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get post by given id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	post, err := h.Service.GetDetails(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Update modifies a post, author only
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: verr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	post := req.ToDomain()
	post.ID = id
	post.Title = sanitizer.Sanitize(post.Title)
	post.Content = sanitizer.Sanitize(post.Content)

	if err := h.Service.Update(c.Request.Context(), user, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Delete removes a post, author only
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), user, id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
