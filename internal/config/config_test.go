package config

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"DATABASE_URL": "postgres://localhost/rsvp"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/rsvp", cfg.DB.DSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, RateLimitConfig{Max: 5, Window: 15 * time.Minute}, cfg.LoginRateLimit)
	assert.Equal(t, RateLimitConfig{Max: 10, Window: time.Hour}, cfg.SearchRateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Empty(t, cfg.AdminUsername)
}

func TestFromViper_DSNFromParts(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"DB_HOST":     "db",
		"DB_USER":     "rsvp",
		"DB_PASSWORD": "p@ss word",
		"DB_NAME":     "party",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://rsvp:p%40ss%20word@db:5432/party?sslmode=disable", cfg.DB.DSN)
}

func TestFromViper_MissingDatabase(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"DB_HOST": "db"}))
	assert.ErrorContains(t, err, "database environment variables not set")
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"DATABASE_URL":            "postgres://localhost/rsvp",
		"LOGIN_RATE_LIMIT_MAX":    "3",
		"LOGIN_RATE_LIMIT_WINDOW": "1m",
		"TRUSTED_PROXIES":         "10.0.0.1, 10.0.0.0/8 ,",
		"LOG_LEVEL":               "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, RateLimitConfig{Max: 3, Window: time.Minute}, cfg.LoginRateLimit)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromViper_InvalidLimits(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{
		"DATABASE_URL":          "postgres://localhost/rsvp",
		"SEARCH_RATE_LIMIT_MAX": 0,
	}))
	assert.ErrorContains(t, err, "SEARCH_RATE_LIMIT_MAX")

	_, err = fromViper(newViper(map[string]any{
		"DATABASE_URL": "postgres://localhost/rsvp",
		"TOKEN_TTL":    "0s",
	}))
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/rsvp")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/rsvp", cfg.DB.DSN)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestSigningSecret(t *testing.T) {
	cfg := &Config{AdminPassword: "pw"}
	assert.Equal(t, "pw", cfg.SigningSecret())

	cfg.TokenSecret = "dedicated"
	assert.Equal(t, "dedicated", cfg.SigningSecret())
}

func TestAutoMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.NotContains(t, guestsSchema, "CREATE EXTENSION")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS guests")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	require.NoError(t, AutoMigrate(context.Background(), mock, zerolog.Nop()))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	assert.ErrorContains(t, AutoMigrate(context.Background(), mock, zerolog.Nop()), "permission denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}
