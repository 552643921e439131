package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin with the headers the web client sends
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type", AdminTokenHeader},
		ExposeHeaders:   []string{"Retry-After", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	})
}
