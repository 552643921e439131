package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AdminTokenHeader = "x-admin-token"
	AdminSubjectKey  = "adminSubject"
)

// TokenValidator is satisfied by service.AuthService
type TokenValidator interface {
	ValidateToken(token string) (string, bool)
}

// AdminTokenMiddleware rejects requests without a valid x-admin-token header
func AdminTokenMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(AdminTokenHeader))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token not provided"})
			return
		}

		subject, ok := validator.ValidateToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired admin token"})
			return
		}

		c.Set(AdminSubjectKey, subject)
		c.Next()
	}
}
