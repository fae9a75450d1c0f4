package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"
)

// slidingWindow trims entries older than the window and admits the call
// when fewer than limit remain. It returns {admitted, remaining}.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local limit = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', tonumber(ARGV[2]))
	local used = redis.call('ZCARD', key)
	if used >= limit then
		return {0, 0}
	end

	redis.call('ZADD', key, now, now .. '-' .. math.random())
	redis.call('PEXPIRE', key, tonumber(ARGV[4]))
	return {1, limit - used - 1}
`)

// RedisRateLimiter is a sliding-window limiter whose counters live in
// Redis, so every console replica sees the same login attempts.
type RedisRateLimiter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRateLimiter(rdb *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, prefix: "rl:admin-console:"}
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	KeyFn  func(r *http.Request) string
}

// Middleware enforces cfg. Redis errors fail open.
func (l *RedisRateLimiter) Middleware(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			admitted, remaining, err := l.take(r.Context(), l.prefix+cfg.KeyFn(r), cfg.Limit, cfg.Window)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !admitted {
				w.Header().Set("Retry-After", retryAfter(cfg.Window))
				rateLimited(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RedisRateLimiter) take(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	now := time.Now().UnixMilli()
	res, err := slidingWindow.Run(ctx, l.rdb, []string{key},
		now, now-window.Milliseconds(), limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(res) != 2 {
		return false, 0, redis.Nil
	}
	return res[0] == 1, int(res[1]), nil
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Error struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"request_id,omitempty"`
		} `json:"error"`
	}
	body.Error.Code = "rate_limited"
	body.Error.Message = "too many attempts, try again later"
	body.Error.RequestID = GetRequestID(r.Context())

	render.Status(r, http.StatusTooManyRequests)
	render.JSON(w, r, body)
}

// KeyByIP keys on the client address. RealIP has already resolved proxy
// headers by the time this runs.
func KeyByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
