package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Backend: BackendConfig{
			URL:           "http://localhost:8000/api",
			SyncPath:      "/countries/sync",
			RegionsPath:   "/countries/regions",
			CountriesPath: "/countries/",
			DefaultLimit:  250,
		},
		Session: SessionConfig{IdleTTL: time.Minute, SweepInterval: time.Second, MaxSessions: 10},
		Sync:    SyncConfig{MaxConcurrent: 1, MaxWait: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, Burst: 10},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Backend.URL != "http://localhost:8000/api" {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, "http://localhost:8000/api")
	}
	if cfg.Backend.DefaultLimit != 250 {
		t.Errorf("Backend.DefaultLimit = %d, want %d", cfg.Backend.DefaultLimit, 250)
	}
	if cfg.Backend.Timeout != 0 {
		t.Errorf("Backend.Timeout = %v, want 0 (no timeout)", cfg.Backend.Timeout)
	}
	if cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("Session.IdleTTL = %v, want %v", cfg.Session.IdleTTL, 30*time.Minute)
	}
	if cfg.Sync.MaxConcurrent != 2 {
		t.Errorf("Sync.MaxConcurrent = %d, want %d", cfg.Sync.MaxConcurrent, 2)
	}
	if len(cfg.Security.AllowedOrigins) != 1 || cfg.Security.AllowedOrigins[0] != "http://localhost:8080" {
		t.Errorf("Security.AllowedOrigins = %v, want [http://localhost:8080]", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_URL", "https://countries.internal/api")
	t.Setenv("SYNC_MAX_CONCURRENT", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Backend.URL != "https://countries.internal/api" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Sync.MaxConcurrent != 4 {
		t.Errorf("Sync.MaxConcurrent = %d, want %d", cfg.Sync.MaxConcurrent, 4)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("API_URL", "http://backend:8000/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.URL != "http://backend:8000/api" {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, "http://backend:8000/api")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "forever")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "SESSION_IDLE_TTL") {
		t.Errorf("error should mention SESSION_IDLE_TTL: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "45s")
	t.Setenv("SYNC_MAX_WAIT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.Timeout != 45*time.Second {
		t.Errorf("Backend.Timeout = %v, want %v", cfg.Backend.Timeout, 45*time.Second)
	}
	if cfg.Sync.MaxWait != 90*time.Second {
		t.Errorf("Sync.MaxWait = %v, want %v", cfg.Sync.MaxWait, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"relative backend url", func(c *Config) { c.Backend.URL = "/api" }, "BACKEND_URL"},
		{"ftp backend url", func(c *Config) { c.Backend.URL = "ftp://host/api" }, "BACKEND_URL scheme"},
		{"path without slash", func(c *Config) { c.Backend.RegionsPath = "regions" }, "BACKEND_REGIONS_PATH"},
		{"zero limit", func(c *Config) { c.Backend.DefaultLimit = 0 }, "BACKEND_DEFAULT_LIMIT"},
		{"zero ttl", func(c *Config) { c.Session.IdleTTL = 0 }, "SESSION_IDLE_TTL"},
		{"zero sync slots", func(c *Config) { c.Sync.MaxConcurrent = 0 }, "SYNC_MAX_CONCURRENT"},
		{"rate disabled ignores rpm", func(c *Config) { c.Rate = RateLimitConfig{} }, ""},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	str := cfg.String()
	if !strings.Contains(str, "http://localhost:8000/api") {
		t.Errorf("String() should include backend URL: %s", str)
	}
}
