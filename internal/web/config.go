package web

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	ListenAddr      string
	DBPath          string
	ShutdownTimeout time.Duration
	AllowSignup     bool
	CookieSecure    bool
	SessionTTL      time.Duration
	LogFormat       string // "json" (default) or "text"
	LogLevel        string // "debug", "info" (default), "warn", "error"

	RateLimitAuth   int // /login and /signup per IP per minute (default: 10)
	RateLimitMutate int // POST /todos per session per minute (default: 120)
}

// LoadConfig reads configuration from environment variables with sensible defaults.
func LoadConfig() Config {
	cfg := Config{
		ListenAddr:      ":8080",
		DBPath:          "./data/ticklist.db",
		ShutdownTimeout: 30 * time.Second,
		AllowSignup:     true,
		CookieSecure:    false,
		SessionTTL:      30 * 24 * time.Hour,
		LogFormat:       "json",
		LogLevel:        "info",

		RateLimitAuth:   10,
		RateLimitMutate: 120,
	}

	if v := os.Getenv("TICKLIST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TICKLIST_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TICKLIST_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("TICKLIST_ALLOW_SIGNUP"); v == "false" || v == "0" {
		cfg.AllowSignup = false
	}
	if v := os.Getenv("TICKLIST_COOKIE_SECURE"); v == "true" || v == "1" {
		cfg.CookieSecure = true
	}
	if v := os.Getenv("TICKLIST_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	if v := os.Getenv("TICKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TICKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("TICKLIST_RATE_LIMIT_AUTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitAuth = n
		}
	}
	if v := os.Getenv("TICKLIST_RATE_LIMIT_MUTATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitMutate = n
		}
	}

	return cfg
}
