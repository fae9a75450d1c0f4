package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadinessChecker checks if a dependency is ready.
type ReadinessChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// BackendChecker treats the backend as ready when it answers at all below
// 500; the API root is not guaranteed to serve 200.
type BackendChecker struct {
	url    string
	client *http.Client
}

func NewBackendChecker(url string) *BackendChecker {
	return &BackendChecker{url: url, client: &http.Client{Timeout: 2 * time.Second}}
}

func (c *BackendChecker) Name() string { return "backend" }

func (c *BackendChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &CheckError{Status: resp.StatusCode}
	}
	return nil
}

// RedisChecker pings the session/rate-limit Redis.
type RedisChecker struct {
	rdb *redis.Client
}

func NewRedisChecker(rdb *redis.Client) *RedisChecker {
	return &RedisChecker{rdb: rdb}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

type CheckError struct {
	Status int
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("unhealthy status %d", e.Status)
}

// ReadinessHandler handles /readyz and /healthz endpoints.
type ReadinessHandler struct {
	checkers []ReadinessChecker
}

func NewReadinessHandler(checkers ...ReadinessChecker) *ReadinessHandler {
	return &ReadinessHandler{checkers: checkers}
}

// Healthz is a simple liveness check (process is alive).
func (h *ReadinessHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Readyz runs every checker concurrently and reports each result.
func (h *ReadinessHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := make([]checkResult, len(h.checkers))
	var wg sync.WaitGroup
	for i, checker := range h.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := checkResult{Name: checker.Name(), Status: "healthy"}
			if err := checker.Check(ctx); err != nil {
				res.Status = "unhealthy"
				res.Error = err.Error()
			}
			results[i] = res
		}()
	}
	wg.Wait()

	status, code := "ready", http.StatusOK
	for _, res := range results {
		if res.Status != "healthy" {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
	}

	sendJSON(w, r, code, struct {
		Status string        `json:"status"`
		Checks []checkResult `json:"checks"`
	}{Status: status, Checks: results})
}
