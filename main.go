package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/barbershop-admin/internal/api"
	"github.com/baechuer/barbershop-admin/internal/config"
	"github.com/baechuer/barbershop-admin/internal/downstream"
	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/navigation"
	"github.com/baechuer/barbershop-admin/internal/session"
	"github.com/baechuer/barbershop-admin/internal/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		zlog.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	tp, err := tracing.Init(ctx, tracing.Config{
		OTLPEndpoint: cfg.OTLPEndpoint,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("tracing init failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = session.ConnectRedis(ctx, session.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			zlog.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connect failed")
		}
		defer rdb.Close()
	}

	storage, err := sessionStorage(cfg, rdb)
	if err != nil {
		zlog.Fatal().Err(err).Msg("session storage init failed")
	}
	store, err := session.Open(ctx, storage)
	if err != nil {
		zlog.Fatal().Err(err).Msg("session rehydrate failed")
	}

	baseURL := cfg.BaseURL()
	client, err := downstream.NewAuthorizedClient(downstream.ClientConfig{BaseURL: baseURL}, store, navigation.ContextNavigator{})
	if err != nil {
		zlog.Fatal().Err(err).Msg("backend client init failed")
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.Deps{
			Config:  cfg,
			Session: store,
			API:     client,
			Redis:   rdb,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zlog.Info().
		Str("port", cfg.Port).
		Str("api", baseURL).
		Str("session_backend", cfg.Session.Backend).
		Bool("authenticated", store.IsAuthenticated()).
		Msg("admin console starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal().Err(err).Msg("server failed")
	}
}

func sessionStorage(cfg *config.Config, rdb *redis.Client) (session.Storage, error) {
	if cfg.Session.Backend == "redis" {
		return session.NewRedisStorage(rdb), nil
	}
	fs, err := session.NewFileStorage(cfg.Session.Dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
