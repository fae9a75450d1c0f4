package downstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/navigation"
	"github.com/baechuer/barbershop-admin/middleware"
)

type TokenSource interface {
	Token() string
}

type SessionInvalidator interface {
	IsAuthenticated() bool
	Logout(ctx context.Context) error
}

type Navigator = navigation.Navigator

// PropagateRequestID forwards the console request's correlation ID.
func PropagateRequestID(req *http.Request) (*http.Request, error) {
	if reqID := middleware.GetRequestID(req.Context()); reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}
	return req, nil
}

// BearerToken attaches the current session token. The token is read at
// send time, so a logout between building and sending a request is
// honoured.
func BearerToken(tokens TokenSource) RequestMiddleware {
	return func(req *http.Request) (*http.Request, error) {
		if tok := tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		} else {
			req.Header.Del("Authorization")
		}
		return req, nil
	}
}

// LogFailures logs every failed call and passes it on unchanged.
func LogFailures(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
	if err == nil {
		return resp, nil
	}

	event := logger.Ctx(req.Context()).Warn()
	var te *TransportError
	if errors.As(err, &te) {
		event = logger.Ctx(req.Context()).Error()
	}
	event.
		Err(err).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", StatusCode(err)).
		Msg("downstream_request_failed")

	return resp, err
}

// InvalidateSessionOnUnauthorized performs the forced logout: a 401 while
// the session is authenticated clears the session and, unless the operator
// is already on a public page, redirects to the login page. A 401 while
// logged out is left alone, which keeps anonymous calls from looping.
// The error always reaches the caller.
func InvalidateSessionOnUnauthorized(sess SessionInvalidator, nav Navigator) ResponseMiddleware {
	return func(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
		if StatusCode(err) != http.StatusUnauthorized || !sess.IsAuthenticated() {
			return resp, err
		}

		ctx := req.Context()
		log := logger.Ctx(ctx)
		log.Warn().Str("url", req.URL.String()).Msg("session_invalidated")
		forcedLogouts.Inc()

		if logoutErr := sess.Logout(ctx); logoutErr != nil {
			log.Error().Err(logoutErr).Msg("session_logout_persist_failed")
		}

		if nav != nil && !navigation.IsPublicRoute(nav.CurrentPath(ctx)) {
			nav.Redirect(ctx, navigation.LoginRoute)
		}

		return resp, err
	}
}
