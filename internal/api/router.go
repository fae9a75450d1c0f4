package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/baechuer/barbershop-admin/internal/api/handlers"
	"github.com/baechuer/barbershop-admin/internal/config"
	"github.com/baechuer/barbershop-admin/internal/downstream"
	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/navigation"
	"github.com/baechuer/barbershop-admin/internal/tracing"
	"github.com/baechuer/barbershop-admin/middleware"
)

// Deps is everything the console router needs.
type Deps struct {
	Config  *config.Config
	Session handlers.SessionStore
	// API is the authorized backend client shared by every resource client.
	API *downstream.Client
	// Redis is optional; when set it backs the login rate limit and readiness.
	Redis *redis.Client
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(middleware.Tracing(tracing.ServiceName))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders:   []string{middleware.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(navigation.Middleware)

	checkers := []handlers.ReadinessChecker{handlers.NewBackendChecker(d.API.BaseURL())}
	if d.Redis != nil {
		checkers = append(checkers, handlers.NewRedisChecker(d.Redis))
	}
	readiness := handlers.NewReadinessHandler(checkers...)
	r.Get("/api/healthz", readiness.Healthz)
	r.Get("/api/readyz", readiness.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	sessions := handlers.NewSessionHandler(d.Session, downstream.NewAuthClient(d.API))
	barbers := handlers.NewBarberHandler(downstream.NewBarberClient(d.API), d.Session, cfg.DefaultShopID)
	services := handlers.NewServiceHandler(downstream.NewServiceClient(d.API), cfg.DefaultShopID)
	appointments := handlers.NewAppointmentHandler(downstream.NewAppointmentClient(d.API), d.Session, cfg.DefaultShopID)
	profile := handlers.NewProfileHandler(d.Session, downstream.NewUserClient(d.API))

	r.Get(navigation.LoginRoute, sessions.LoginPage)
	r.With(loginLimiter(cfg, d.Redis)).Post(navigation.LoginRoute, sessions.Login)
	r.Post("/logout", sessions.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Session, navigation.LoginRoute))

		r.Get("/api/session", sessions.Session)

		r.Get("/barberos", barbers.List)
		r.Post("/barberos", barbers.Create)
		r.Put("/barberos/{id}", barbers.Update)

		r.Get("/servicios", services.List)

		r.Get("/citas", appointments.List)
		r.Post("/citas", appointments.Create)

		r.Put("/perfil", profile.Update)
	})

	return r
}

// loginLimiter shares counters across replicas through Redis when it is
// available and falls back to an in-process limiter otherwise.
func loginLimiter(cfg *config.Config, rdb *redis.Client) func(http.Handler) http.Handler {
	if rdb != nil {
		return middleware.NewRedisRateLimiter(rdb).Middleware(middleware.RateLimitConfig{
			Limit:  cfg.LoginRateLimit,
			Window: cfg.LoginRateWindow,
			KeyFn: func(r *http.Request) string {
				return "login:" + middleware.KeyByIP(r)
			},
		})
	}
	return httprate.LimitByIP(cfg.LoginRateLimit, cfg.LoginRateWindow)
}
