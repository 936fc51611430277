package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/rest/request"
	"github.com/GhostMEn20034/small-social-network/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// sanitizer strips markup from user-authored text before it reaches the services
var sanitizer = bluemonday.StrictPolicy()

// CommentHandler represent the http handler for comments
type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

// FetchTopLevel lists the top-level, unblocked comments of a post
func (h *CommentHandler) FetchTopLevel(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Query("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid post_id"})
		return
	}

	ctx := c.Request.Context()
	comments, err := h.Service.FetchTopLevel(ctx, postID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]*response.Comment, len(comments))
	for i := range comments {
		res[i] = response.NewCommentFromDomain(&comments[i])
	}
	c.JSON(http.StatusOK, res)
}

// Create stores a comment on a post, optionally as a reply
func (h *CommentHandler) Create(c *gin.Context) {
	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	content := sanitizer.Sanitize(req.Content)
	ctx := c.Request.Context()
	comment, err := h.Service.Create(ctx, user, content, req.PostID, req.ParentID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(comment))
}

// GetDetails returns a comment with its direct replies
func (h *CommentHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.GetDetails(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentWithRepliesFromDomain(comment))
}

// Update replaces the comment content, owner only
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.UpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Update(ctx, id, user, sanitizer.Sanitize(req.Content))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(comment))
}

// ToggleLike likes the comment, or takes the like back when called again
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.ToggleLike(c.Request.Context(), id, user); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Block hides a comment, post owner only
func (h *CommentHandler) Block(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	comment, err := h.Service.BlockComment(c.Request.Context(), id, user)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(comment))
}

// Delete removes a comment and its reply subtree, owner only
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id, user); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// DailyBreakdown aggregates comment activity on the requester's posts per day
func (h *CommentHandler) DailyBreakdown(c *gin.Context) {
	var req request.DateRange
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		return
	}

	// both strings already passed the datetime binding tag, parsing cannot fail
	dateFrom, _ := time.Parse(response.DateFormat, req.DateFrom)
	dateTo, _ := time.Parse(response.DateFormat, req.DateTo)

	user, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.Service.DailyAnalytic(c.Request.Context(), domain.DateRange{From: dateFrom, To: dateTo}, user)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.DailyCommentStat, len(stats))
	for i := range stats {
		res[i] = response.NewDailyCommentStatFromDomain(stats[i])
	}
	c.JSON(http.StatusOK, res)
}

// currentUser reads the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) (domain.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return domain.User{}, false
	}
	return domain.User{ID: userID.(int64)}, true
}

// getStatusCode will get the http status code for a service error
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
