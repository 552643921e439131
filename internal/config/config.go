package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the server
type Config struct {
	ServerPort string
	GinMode    string

	DB DBConfig

	AdminUsername string
	AdminPassword string
	TokenSecret   string
	TokenTTL      time.Duration

	LoginRateLimit  RateLimitConfig
	SearchRateLimit RateLimitConfig

	TrustedProxies []string

	LogLevel  string
	LogFormat string
}

// RateLimitConfig is a fixed window limit
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

var defaults = map[string]any{
	"SERVER_PORT":              "8080",
	"DB_PORT":                  "5432",
	"DB_SSLMODE":               "disable",
	"TOKEN_TTL":                "24h",
	"LOGIN_RATE_LIMIT_MAX":     5,
	"LOGIN_RATE_LIMIT_WINDOW":  "15m",
	"SEARCH_RATE_LIMIT_MAX":    10,
	"SEARCH_RATE_LIMIT_WINDOW": "1h",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "json",
}

// LoadEnvFile loads .env files into the process environment. A missing file is not an error.
func LoadEnvFile(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerPort:    v.GetString("SERVER_PORT"),
		GinMode:       v.GetString("GIN_MODE"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		TokenSecret:   v.GetString("TOKEN_SECRET"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		LoginRateLimit: RateLimitConfig{
			Max:    v.GetInt("LOGIN_RATE_LIMIT_MAX"),
			Window: v.GetDuration("LOGIN_RATE_LIMIT_WINDOW"),
		},
		SearchRateLimit: RateLimitConfig{
			Max:    v.GetInt("SEARCH_RATE_LIMIT_MAX"),
			Window: v.GetDuration("SEARCH_RATE_LIMIT_WINDOW"),
		},
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	db, err := loadDBConfig(v)
	if err != nil {
		return nil, err
	}
	cfg.DB = *db

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	for name, rl := range map[string]RateLimitConfig{"LOGIN": cfg.LoginRateLimit, "SEARCH": cfg.SearchRateLimit} {
		if rl.Max <= 0 || rl.Window <= 0 {
			return nil, fmt.Errorf("%s_RATE_LIMIT_MAX and %s_RATE_LIMIT_WINDOW must be positive", name, name)
		}
	}
	return cfg, nil
}

// SigningSecret is the token HMAC key. It falls back to the admin password.
func (c *Config) SigningSecret() string {
	if c.TokenSecret != "" {
		return c.TokenSecret
	}
	return c.AdminPassword
}

func loadDBConfig(v *viper.Viper) (*DBConfig, error) {
	if dsn := v.GetString("DATABASE_URL"); dsn != "" {
		return &DBConfig{DSN: dsn}, nil
	}

	dbHost := v.GetString("DB_HOST")
	dbPort := v.GetString("DB_PORT")
	dbUser := v.GetString("DB_USER")
	dbPassword := v.GetString("DB_PASSWORD")
	dbName := v.GetString("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbUser, dbPassword),
		Host:     dbHost + ":" + dbPort,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(v.GetString("DB_SSLMODE")),
	}
	return &DBConfig{DSN: u.String()}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
