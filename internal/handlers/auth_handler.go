package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tattoo-studio-api/internal/middleware"
)

// TokenHandler issues identity tokens on the development server
type TokenHandler struct {
	authService *middleware.AuthService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(authService *middleware.AuthService) *TokenHandler {
	return &TokenHandler{
		authService: authService,
	}
}

// TokenRequest represents the dev token request body
type TokenRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

// TokenResponse carries an issued token
type TokenResponse struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary Issue a development token
// @Description Signs a token for any user id. Registered outside production only.
// @Tags dev
// @Accept json
// @Produce json
// @Param request body TokenRequest true "User to impersonate"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dev/token [post]
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	token, err := h.authService.GenerateToken(req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		UserID:    req.UserID,
		ExpiresAt: time.Now().Add(h.authService.TokenDuration()),
	})
}
