package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// respondRateLimited writes a 429 with Retry-After when err is a rate limit error
func respondRateLimited(c *gin.Context, err error, msg func(retryAfter int) string) bool {
	var rlErr *service.RateLimitError
	if !errors.As(err, &rlErr) {
		return false
	}
	c.Header("Retry-After", strconv.Itoa(rlErr.RetryAfterSeconds))
	errorJSON(c, http.StatusTooManyRequests, msg(rlErr.RetryAfterSeconds))
	return true
}

// respondError maps service errors to status codes. Unexpected errors are
// logged in full and reported to the client with the generic fallback message.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		errorJSON(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "))
	case errors.Is(err, service.ErrInvalidCredentials):
		errorJSON(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrGuestNotFound):
		errorJSON(c, http.StatusNotFound, service.ErrGuestNotFound.Error())
	case errors.Is(err, service.ErrNotConfigured):
		errorJSON(c, http.StatusInternalServerError, "credentials not configured")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
		errorJSON(c, http.StatusInternalServerError, fallback)
	}
}
