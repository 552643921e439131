package handler

import (
	"context"
	"fmt"
	"net/http"

	"event_rsvp/internal/middleware"
	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterConfig wires services into the HTTP router
type RouterConfig struct {
	Auth           service.AuthService
	Guests         service.GuestService
	RSVP           service.RSVPService
	HealthCheck    func(ctx context.Context) error
	TrustedProxies []string
	Log            zerolog.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger(cfg.Log))

	authHandler := NewAuthHandler(cfg.Auth, cfg.Log)
	guestHandler := NewGuestHandler(cfg.Guests, cfg.Log)
	rsvpHandler := NewRSVPHandler(cfg.RSVP, cfg.Log)

	adminTokenMW := middleware.AdminTokenMiddleware(cfg.Auth)

	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup)
	guestHandler.RegisterGuestRoutes(apiGroup, adminTokenMW)
	rsvpHandler.RegisterRSVPRoutes(apiGroup)

	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	return router, nil
}
