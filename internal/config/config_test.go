package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, 1, cfg.DefaultShopID)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_ENV":          "production",
		"PUBLIC_PROTOCOL":  "https:",
		"PUBLIC_HOSTNAME":  "admin.barberia.co",
		"SESSION_BACKEND":  "redis",
		"REDIS_ADDR":       "localhost:6379",
		"ALLOWED_ORIGINS":  "https://a.example,https://b.example",
		"LOGIN_RATE_LIMIT": "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://admin.barberia.co:8000/api", cfg.BaseURL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.LoginRateLimit)
}

func TestLoad_DevelopmentUsesLocalBackend(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_ENV": "development",
		"API_URL": "https://ignored.example/api",
	}))
	require.NoError(t, err)
	assert.Equal(t, LocalAPIURL, cfg.BaseURL())
}

func TestLoad_Validation(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_BACKEND": "redis",
	}))
	assert.ErrorContains(t, err, "REDIS_ADDR")

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_BACKEND": "sqlite",
	}))
	assert.ErrorContains(t, err, "SESSION_BACKEND")

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"TRACING_ENABLED": "true",
	}))
	assert.ErrorContains(t, err, "OTLP_ENDPOINT")
}
