package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port   string `env:"HTTP_PORT, default=8080"`
	AppEnv string `env:"APP_ENV, default=production"`

	// APIURL overrides base URL detection when set.
	APIURL         string `env:"API_URL"`
	PublicProtocol string `env:"PUBLIC_PROTOCOL, default=http:"`
	PublicHostname string `env:"PUBLIC_HOSTNAME, default=localhost"`
	DefaultShopID  int    `env:"DEFAULT_SHOP_ID, default=1"`

	Session SessionConfig
	Redis   RedisConfig

	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS, default=http://localhost:5173"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT, default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`

	TracingEnabled bool   `env:"TRACING_ENABLED, default=false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=console"`
}

type SessionConfig struct {
	// Backend is "file" or "redis".
	Backend string `env:"SESSION_BACKEND, default=file"`
	Dir     string `env:"SESSION_DIR, default=.admin-console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Environment is the descriptor ResolveBaseURL needs.
func (c *Config) Environment() Environment {
	return Environment{
		Development: c.IsDevelopment(),
		Override:    c.APIURL,
		Protocol:    c.PublicProtocol,
		Hostname:    c.PublicHostname,
	}
}

// BaseURL is the backend API address the console talks to.
func (c *Config) BaseURL() string {
	return ResolveBaseURL(c.Environment())
}

// Load reads .env (if any) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Session.Backend {
	case "file":
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("config: missing REDIS_ADDR (required when SESSION_BACKEND=redis)")
		}
	default:
		return nil, fmt.Errorf("config: unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}

	if cfg.TracingEnabled && cfg.OTLPEndpoint == "" {
		return nil, fmt.Errorf("config: missing OTLP_ENDPOINT (required when TRACING_ENABLED=true)")
	}

	return &cfg, nil
}
