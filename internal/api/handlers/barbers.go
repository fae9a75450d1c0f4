package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/go-chi/chi/v5"
)

type BarberClient interface {
	ListByShop(ctx context.Context, shopID int) ([]domain.Barber, error)
	Create(ctx context.Context, in domain.CreateBarberInput) (*domain.Barber, error)
	Update(ctx context.Context, id int, in domain.UpdateBarberInput) (*domain.Barber, error)
}

type BarberHandler struct {
	barbers  BarberClient
	sessions SessionReader
	shopID   int
	now      func() time.Time
}

func NewBarberHandler(bc BarberClient, sessions SessionReader, defaultShopID int) *BarberHandler {
	return &BarberHandler{
		barbers:  bc,
		sessions: sessions,
		shopID:   defaultShopID,
		now:      time.Now,
	}
}

type BarberListResponse struct {
	Barberos []domain.Barber    `json:"barberos"`
	Stats    domain.BarberStats `json:"stats"`
}

func (h *BarberHandler) List(w http.ResponseWriter, r *http.Request) {
	shop, err := shopID(r, h.shopID)
	if err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	barbers, err := h.barbers.ListByShop(r.Context(), shop)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to fetch barbers")
		return
	}

	sendJSON(w, r, http.StatusOK, BarberListResponse{
		Barberos: barbers,
		Stats:    domain.SummarizeBarbers(barbers, h.now()),
	})
}

// canManage writes a 403 and returns false unless the operator may edit
// the barber roster.
func (h *BarberHandler) canManage(w http.ResponseWriter, r *http.Request) bool {
	perms := domain.CalculatePermissions(h.sessions.User())
	if perms.CanManageBarbers {
		return true
	}
	msg := "only admins and owners can manage barbers"
	if perms.Reason != "" {
		msg = perms.Reason
	}
	sendError(w, r, "forbidden", msg, http.StatusForbidden)
	return false
}

func (h *BarberHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.canManage(w, r) {
		return
	}

	var in domain.CreateBarberInput
	in.BarberiaID = h.shopID
	if err := decodeAndValidate(r, &in); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	barber, err := h.barbers.Create(r.Context(), in)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to create barber")
		return
	}
	sendJSON(w, r, http.StatusCreated, barber)
}

func (h *BarberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		sendError(w, r, "validation_failed", "invalid barber id", http.StatusBadRequest)
		return
	}
	if !h.canManage(w, r) {
		return
	}

	var in domain.UpdateBarberInput
	if err := decodeAndValidate(r, &in); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	barber, err := h.barbers.Update(r.Context(), id, in)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to update barber")
		return
	}
	sendJSON(w, r, http.StatusOK, barber)
}
