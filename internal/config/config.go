// Package config provides centralized configuration management for the dashboard.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Session  SessionConfig
	Sync     SyncConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 0, none).
	// A sync against a slow backend may legitimately take minutes.
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 0, none)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"0s"`
}

// BackendConfig holds settings for the country API the dashboard reads from.
type BackendConfig struct {
	// URL is the base URL of the country API (default: http://localhost:8000/api)
	// Supports both BACKEND_URL and API_URL env vars.
	URL string `env:"BACKEND_URL" envAlt:"API_URL" default:"http://localhost:8000/api"`

	// SyncPath is appended to URL for the sync trigger (default: /countries/sync)
	SyncPath string `env:"BACKEND_SYNC_PATH" default:"/countries/sync"`

	// RegionsPath is appended to URL for the region list (default: /countries/regions)
	RegionsPath string `env:"BACKEND_REGIONS_PATH" default:"/countries/regions"`

	// CountriesPath is appended to URL for the country list (default: /countries/)
	CountriesPath string `env:"BACKEND_COUNTRIES_PATH" default:"/countries/"`

	// Timeout bounds each backend call (default: 0, none)
	Timeout time.Duration `env:"BACKEND_TIMEOUT" default:"0s"`

	// DefaultLimit is the limit sent with every country query (default: 250)
	DefaultLimit int `env:"BACKEND_DEFAULT_LIMIT" default:"250"`
}

// SessionConfig holds page session lifecycle settings.
type SessionConfig struct {
	// IdleTTL is how long an untouched page session is kept (default: 30m)
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" default:"30m"`

	// SweepInterval is how often idle sessions are evicted (default: 1m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"1m"`

	// MaxSessions caps the number of live page sessions (default: 1000)
	MaxSessions int `env:"SESSION_MAX" default:"1000"`
}

// SyncConfig holds backend sync concurrency settings.
type SyncConfig struct {
	// MaxConcurrent is the maximum number of syncs in flight across all sessions (default: 2)
	MaxConcurrent int `env:"SYNC_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long a sync waits for a free slot (default: 30s)
	MaxWait time.Duration `env:"SYNC_MAX_WAIT" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per client IP.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// Burst is the number of requests allowed at once (default: 50).
	// Typing in the search box fires one request per keystroke.
	Burst int `env:"RATE_LIMIT_BURST" default:"50"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins is a comma-separated list of origins allowed to call /api
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8080"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
