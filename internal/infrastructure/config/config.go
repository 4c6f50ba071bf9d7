package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

// BackendConfig locates the intake backend API. A single base URL is the
// only required coordinate, mirroring how the hosted form is configured.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// SessionConfig selects the durable token slot. "file" keeps the token on
// local disk; "redis" keeps it under a named key for ephemeral filesystems.
type SessionConfig struct {
	Store     string `env:"SESSION_STORE,      default=file"`
	TokenFile string `env:"SESSION_TOKEN_FILE, default=.portal/admin_token"`
	TokenKey  string `env:"SESSION_TOKEN_KEY,  default=admin_token"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.Store != "file" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.Session.Store)
	}
	return &cfg, nil
}
