package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/baechuer/barbershop-admin/internal/downstream"
	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/navigation"
	"github.com/baechuer/barbershop-admin/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SessionReader is the read side of the operator session.
type SessionReader interface {
	Token() string
	User() *domain.User
	IsAuthenticated() bool
}

// SessionStore is the operator session as the handlers use it.
type SessionStore interface {
	SessionReader
	Login(ctx context.Context, token string, user domain.User) error
	Logout(ctx context.Context) error
	// RefreshUser swaps in user only while token is still the live session.
	RefreshUser(ctx context.Context, token string, user domain.User) (bool, error)
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func sendError(w http.ResponseWriter, r *http.Request, code string, message string, status int) {
	resp := domain.APIError{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.RequestID = middleware.GetRequestID(r.Context())

	sendJSON(w, r, status, resp)
}

// handleDownstreamError renders a backend failure as the console's error
// envelope. When the call forced a logout and asked for the login page,
// the operator is redirected there instead.
func handleDownstreamError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	if t := navigation.FromContext(r.Context()); t != nil {
		if target, ok := t.Pending(); ok {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
	}

	var se *downstream.StatusError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = defaultMsg
		}
		sendError(w, r, se.Code, msg, se.StatusCode)
		return
	}

	switch {
	case errors.Is(err, downstream.ErrTimeout):
		sendError(w, r, "upstream_timeout", "backend did not answer in time", http.StatusGatewayTimeout)
	case errors.Is(err, downstream.ErrUnavailable):
		sendError(w, r, "upstream_unavailable", "backend is unreachable", http.StatusBadGateway)
	case errors.Is(err, downstream.ErrCanceled):
		logger.Ctx(r.Context()).Debug().Err(err).Msg("request_canceled")
		sendError(w, r, "request_canceled", "request canceled", http.StatusServiceUnavailable)
	default:
		logger.Ctx(r.Context()).Error().Err(err).Msg("downstream_call_failed")
		sendError(w, r, "internal_error", defaultMsg, http.StatusBadGateway)
	}
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return validationMessage(ve)
		}
		return err
	}
	return nil
}

func validationMessage(ve validator.ValidationErrors) error {
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}

// shopID reads ?barberia_id=, falling back to fallback when absent.
func shopID(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("barberia_id")
	if raw == "" {
		return fallback, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid barberia_id")
	}
	return id, nil
}
