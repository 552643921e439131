package service

import (
	"context"
	"fmt"

	"event_rsvp/internal/utils"

	"github.com/rs/zerolog"
)

// AdminCredentials are the externally configured admin login values
type AdminCredentials struct {
	Username string
	Password string // plain text or bcrypt hash
}

// Limiter is satisfied by *utils.RateLimiter
type Limiter interface {
	Check(key string) utils.RateLimitResult
}

// TokenManager is satisfied by *utils.TokenUtil
type TokenManager interface {
	Issue(subject string) (string, error)
	Validate(token string) (string, bool)
}

// AuthService provides admin authentication
type AuthService interface {
	Login(ctx context.Context, clientIP, username, password string) (string, error)
	ValidateToken(token string) (string, bool)
}

type authService struct {
	creds   AdminCredentials
	limiter Limiter
	tokens  TokenManager
	log     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(creds AdminCredentials, limiter Limiter, tokens TokenManager, log zerolog.Logger) AuthService {
	return &authService{
		creds:   creds,
		limiter: limiter,
		tokens:  tokens,
		log:     log.With().Str("component", "auth").Logger(),
	}
}

// Login checks the rate limit for clientIP first, then the credentials, and
// returns a signed session token.
func (s *authService) Login(ctx context.Context, clientIP, username, password string) (string, error) {
	if res := s.limiter.Check(clientIP); !res.Allowed {
		s.log.Warn().Str("ip", clientIP).Int("retry_after", res.RetryAfterSeconds()).Msg("login rate limit exceeded")
		return "", &RateLimitError{RetryAfterSeconds: res.RetryAfterSeconds()}
	}

	if s.creds.Username == "" || s.creds.Password == "" {
		s.log.Error().Msg("admin credentials not configured")
		return "", ErrNotConfigured
	}

	userOK := utils.SecureEqual(username, s.creds.Username)
	passOK := utils.CheckPassword(password, s.creds.Password)
	if !userOK || !passOK {
		s.log.Warn().Str("ip", clientIP).Str("username", username).
			Bool("username_match", userOK).Msg("failed login attempt")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Info().Str("ip", clientIP).Msg("successful admin login")
	return token, nil
}

// ValidateToken reports whether token is a valid admin session
func (s *authService) ValidateToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.tokens.Validate(token)
}
