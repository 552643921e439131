package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is the parent of every input validation error (HTTP 400)
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidName     = fmt.Errorf("%w: name must be between 1 and 100 characters", ErrValidation)
	ErrInvalidPhone    = fmt.Errorf("%w: phone must have 10 or 11 digits", ErrValidation)
	ErrInvalidGuestIDs = fmt.Errorf("%w: invalid guest ids", ErrValidation)
	ErrInvalidRequest  = fmt.Errorf("%w: invalid request", ErrValidation)
	ErrNoRows          = fmt.Errorf("%w: no rows to import", ErrValidation)
	ErrTooManyRows     = fmt.Errorf("%w: too many rows to import", ErrValidation)
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotConfigured      = errors.New("admin credentials not configured")
	ErrGuestNotFound      = errors.New("guest not found")
)

// RateLimitError reports a denied attempt and how long to wait
type RateLimitError struct {
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfterSeconds)
}

// RetryAfter returns the wait as a duration
func (e *RateLimitError) RetryAfter() time.Duration {
	return time.Duration(e.RetryAfterSeconds) * time.Second
}
