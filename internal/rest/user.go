package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/rest/request"
	"github.com/GhostMEn20034/small-social-network/internal/rest/response"
)

// UserHandler represent the http handler for accounts
type UserHandler struct {
	Service domain.UserUsecase
}

func NewUserHandler(svc domain.UserUsecase) *UserHandler {
	return &UserHandler{
		Service: svc,
	}
}

// Signup registers a new account
func (h *UserHandler) Signup(c *gin.Context) {
	var req request.Signup
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	user := req.ToDomain()
	if err := h.Service.Register(c.Request.Context(), &user, req.Password); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewUserFromDomain(&user))
}

// Token exchanges credentials for a JWT
func (h *UserHandler) Token(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// do not leak whether the account exists
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, response.Token{AccessToken: token, TokenType: "bearer"})
}
