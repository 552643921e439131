package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"event_rsvp/internal/config"
	"event_rsvp/internal/handler"
	"event_rsvp/internal/repository"
	"event_rsvp/internal/service"
	"event_rsvp/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	limiterCleanupInterval = time.Minute
	shutdownTimeout        = 5 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp()
	if err != nil {
		return err
	}
	cfg, log := a.cfg, a.log

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_USERNAME or ADMIN_PASSWORD not set, admin login is disabled")
	}

	dbPool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool, log); err != nil {
		return err
	}

	// --- Initialize Utilities ---
	tokenUtil := utils.NewTokenUtil([]byte(cfg.SigningSecret()), cfg.TokenTTL)
	loginLimiter := utils.NewRateLimiter(utils.NewMemoryRateLimitStore(), cfg.LoginRateLimit.Max, cfg.LoginRateLimit.Window)
	searchLimiter := utils.NewRateLimiter(utils.NewMemoryRateLimitStore(), cfg.SearchRateLimit.Max, cfg.SearchRateLimit.Window)
	go runLimiterCleanup(ctx, limiterCleanupInterval, loginLimiter, searchLimiter)

	// --- Initialize Repositories ---
	guestRepo := repository.NewGuestRepository(dbPool)

	// --- Initialize Services ---
	creds := service.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	authService := service.NewAuthService(creds, loginLimiter, tokenUtil, log)
	guestService := service.NewGuestService(guestRepo, log)
	rsvpService := service.NewRSVPService(guestRepo, searchLimiter, log)

	router, err := handler.NewRouter(handler.RouterConfig{
		Auth:           authService,
		Guests:         guestService,
		RSVP:           rsvpService,
		HealthCheck:    dbPool.Ping,
		TrustedProxies: cfg.TrustedProxies,
		Log:            log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}

type cleaner interface {
	Cleanup() int
}

// runLimiterCleanup drops expired rate limit records until ctx is done
func runLimiterCleanup(ctx context.Context, interval time.Duration, limiters ...cleaner) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, l := range limiters {
				l.Cleanup()
			}
		}
	}
}
