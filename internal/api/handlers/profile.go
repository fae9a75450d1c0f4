package handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/baechuer/barbershop-admin/internal/logger"
	"github.com/baechuer/barbershop-admin/internal/navigation"
)

type UserClient interface {
	Update(ctx context.Context, id int, in domain.UpdateProfileInput) (*domain.User, error)
}

type ProfileHandler struct {
	store SessionStore
	users UserClient
}

func NewProfileHandler(store SessionStore, uc UserClient) *ProfileHandler {
	return &ProfileHandler{store: store, users: uc}
}

// Update saves the operator's profile and refreshes the session with the
// returned user, keeping the current token. The refresh is dropped if the
// session was logged out or replaced meanwhile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := h.store.User()
	token := h.store.Token()
	if current == nil || token == "" {
		sendError(w, r, "unauthorized", "auth required", http.StatusUnauthorized)
		return
	}

	var in domain.UpdateProfileInput
	if err := decodeAndValidate(r, &in); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.users.Update(r.Context(), current.ID, in)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to update profile")
		return
	}

	// the users endpoint may omit the nested role
	if updated.Role.Nombre == "" {
		updated.Role = current.Role
		updated.RoleID = current.RoleID
	}

	refreshed, err := h.store.RefreshUser(r.Context(), token, *updated)
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("session_persist_failed")
	}
	if !refreshed {
		// the session ended or changed hands while the update was in flight
		if t := navigation.FromContext(r.Context()); t != nil {
			if target, ok := t.Pending(); ok {
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
		}
		sendError(w, r, "unauthorized", "session ended during update", http.StatusUnauthorized)
		return
	}
	sendJSON(w, r, http.StatusOK, updated)
}
