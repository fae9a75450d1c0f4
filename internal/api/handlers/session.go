package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/session"
	"github.com/baechuer/barbershop-admin/internal/tracing"
)

type AuthClient interface {
	Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error)
}

type SessionHandler struct {
	store SessionStore
	auth  AuthClient
}

func NewSessionHandler(store SessionStore, auth AuthClient) *SessionHandler {
	return &SessionHandler{store: store, auth: auth}
}

// SessionView is what the console exposes about the session. The token
// itself never leaves the process.
type SessionView struct {
	Authenticated  bool               `json:"authenticated"`
	User           *domain.User       `json:"user"`
	Permissions    domain.Permissions `json:"permissions"`
	TokenExpiresAt *time.Time         `json:"token_expires_at,omitempty"`
}

func (h *SessionHandler) view() SessionView {
	user := h.store.User()
	v := SessionView{
		Authenticated: h.store.IsAuthenticated(),
		User:          user,
		Permissions:   domain.CalculatePermissions(user),
	}
	if exp, ok := session.TokenExpiry(h.store.Token()); ok {
		v.TokenExpiresAt = &exp
	}
	return v
}

// LoginPage reports whether an operator is already signed in.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, http.StatusOK, h.view())
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := decodeAndValidate(r, &in); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	ctx, span := tracing.StartSpan(r.Context(), "session.login")
	defer span.End()

	res, err := h.auth.Login(ctx, in)
	if err != nil {
		handleDownstreamError(w, r, err, "login failed")
		return
	}

	if res.Token == "" {
		logger.Ctx(ctx).Error().Int("user_id", res.User.ID).Msg("login_response_without_token")
		sendError(w, r, "upstream_invalid_response", "login response carried no token", http.StatusBadGateway)
		return
	}

	if err := h.store.Login(ctx, res.Token, res.User); err != nil {
		// the in-memory session is live; only durability is lost
		logger.Ctx(ctx).Error().Err(err).Msg("session_persist_failed")
	}
	logger.Ctx(ctx).Info().Int("user_id", res.User.ID).Msg("operator_logged_in")

	sendJSON(w, r, http.StatusOK, h.view())
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("session_persist_failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, http.StatusOK, h.view())
}
