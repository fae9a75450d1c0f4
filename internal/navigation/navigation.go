// Package navigation models the page the operator is on and the redirect a
// forced logout asks for.
package navigation

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

// LoginRoute is where a forced logout sends the operator.
const LoginRoute = "/login"

// Navigator reports the current page and performs redirects.
type Navigator interface {
	CurrentPath(ctx context.Context) string
	Redirect(ctx context.Context, path string)
}

// IsPublicRoute reports whether path is reachable without a session.
// Only login, register and the landing page are public.
func IsPublicRoute(path string) bool {
	return strings.HasPrefix(path, "/login") ||
		strings.HasPrefix(path, "/register") ||
		path == "/"
}

// Tracker is the navigation state of one console request.
type Tracker struct {
	mu       sync.Mutex
	path     string
	redirect string
}

func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

func (t *Tracker) Path() string {
	return t.path
}

func (t *Tracker) Redirect(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.redirect = path
}

// Pending returns the redirect target, if one was requested.
func (t *Tracker) Pending() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.redirect, t.redirect != ""
}

type ctxKeyTracker struct{}

func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, ctxKeyTracker{}, t)
}

func FromContext(ctx context.Context) *Tracker {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(ctxKeyTracker{}).(*Tracker)
	return t
}

// Middleware gives every console request its own Tracker.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := NewTracker(r.URL.Path)
		next.ServeHTTP(w, r.WithContext(WithTracker(r.Context(), t)))
	})
}

// ContextNavigator resolves the Tracker of the in-flight request, so one
// client built at startup redirects whichever console request triggered it.
// Calls made outside a console request have no page and never redirect.
type ContextNavigator struct{}

func (ContextNavigator) CurrentPath(ctx context.Context) string {
	if t := FromContext(ctx); t != nil {
		return t.Path()
	}
	return ""
}

func (ContextNavigator) Redirect(ctx context.Context, path string) {
	if t := FromContext(ctx); t != nil {
		t.Redirect(path)
	}
}
