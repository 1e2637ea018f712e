package handler

import (
	"net/http"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"

	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

type AuthHandler struct {
	users  service.UserService
	issuer TokenIssuer
}

func NewAuthHandler(users service.UserService, issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// RegisterPublicRoutes 不需要驗證的路由
func (h *AuthHandler) RegisterPublicRoutes(r gin.IRouter) {
	r.POST("auth/guest", h.Guest)
}

func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("me", h.Me)
}

// GuestRequest 訪客只需要名字
type GuestRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type GuestResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

func (h *AuthHandler) Guest(c *gin.Context) {
	var req GuestRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.users.CreateGuest(c, req.Name)
	if err != nil {
		handleError(c, err, "CreateGuest")
		return
	}
	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		handleError(c, err, "IssueGuestToken")
		return
	}
	c.JSON(http.StatusCreated, GuestResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
