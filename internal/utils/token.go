package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an admin session token
const DefaultTokenTTL = 24 * time.Hour

var errEmptySecret = errors.New("token secret is empty")

// TokenUtil issues and validates HMAC-signed session tokens. It keeps no
// per-token state, so tokens stay valid across restarts until they expire.
type TokenUtil struct {
	secret []byte
	ttl    time.Duration
	Now    func() time.Time
}

// NewTokenUtil creates a new TokenUtil
func NewTokenUtil(secret []byte, ttl time.Duration) *TokenUtil {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenUtil{secret: secret, ttl: ttl, Now: time.Now}
}

// Issue signs a token for subject valid for the configured TTL
func (tu *TokenUtil) Issue(subject string) (string, error) {
	if len(tu.secret) == 0 {
		return "", errEmptySecret
	}

	now := tu.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tu.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tu.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate returns the token subject and whether the token is valid.
// Malformed, forged and expired tokens are all reported the same way.
func (tu *TokenUtil) Validate(tokenString string) (string, bool) {
	claims, err := tu.parse(tokenString)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (tu *TokenUtil) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	if len(tu.secret) == 0 {
		return nil, errEmptySecret
	}
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tu.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tu.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
