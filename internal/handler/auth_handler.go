package handler

import (
	"fmt"
	"net/http"

	"event_rsvp/internal/middleware"
	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler serves the admin-auth endpoint
type AuthHandler struct {
	service service.AuthService
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, log: log}
}

type adminAuthRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// AdminAuth validates a token when action is "validate" and logs in otherwise
func (h *AuthHandler) AdminAuth(c *gin.Context) {
	var req adminAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Action == "validate" {
		_, valid := h.service.ValidateToken(req.Token)
		c.JSON(http.StatusOK, gin.H{"valid": valid})
		return
	}

	token, err := h.service.Login(c.Request.Context(), middleware.ClientIP(c), req.Username, req.Password)
	if err != nil {
		if respondRateLimited(c, err, loginRateLimitMessage) {
			return
		}
		respondError(c, h.log, err, "failed to process authentication")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func loginRateLimitMessage(retryAfter int) string {
	minutes := (retryAfter + 59) / 60
	return fmt.Sprintf("too many attempts, try again in %d minutes", minutes)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin-auth", h.AdminAuth)
}
