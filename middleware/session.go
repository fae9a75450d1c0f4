package middleware

import "net/http"

// SessionReader is the read side of the operator session.
type SessionReader interface {
	IsAuthenticated() bool
}

// RequireSession sends unauthenticated visitors to loginPath, the way the
// front-end's protected routes do.
func RequireSession(sessions SessionReader, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated() {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
