package handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/barbershop-admin/internal/domain"
)

type AppointmentClient interface {
	ListMine(ctx context.Context) ([]domain.Appointment, error)
	Create(ctx context.Context, in domain.CreateAppointmentInput) (*domain.Appointment, error)
}

type AppointmentHandler struct {
	appointments AppointmentClient
	sessions     SessionReader
	shopID       int
}

func NewAppointmentHandler(ac AppointmentClient, sessions SessionReader, defaultShopID int) *AppointmentHandler {
	return &AppointmentHandler{appointments: ac, sessions: sessions, shopID: defaultShopID}
}

type AppointmentListResponse struct {
	Citas []domain.Appointment    `json:"citas"`
	Stats domain.AppointmentStats `json:"stats"`
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	citas, err := h.appointments.ListMine(r.Context())
	if err != nil {
		handleDownstreamError(w, r, err, "failed to fetch appointments")
		return
	}
	sendJSON(w, r, http.StatusOK, AppointmentListResponse{
		Citas: citas,
		Stats: domain.SummarizeAppointments(citas),
	})
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	perms := domain.CalculatePermissions(h.sessions.User())
	if !perms.CanBook {
		sendError(w, r, "forbidden", perms.Reason, http.StatusForbidden)
		return
	}

	in := domain.CreateAppointmentInput{BarberiaID: h.shopID}
	if err := decodeAndValidate(r, &in); err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	cita, err := h.appointments.Create(r.Context(), in)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to book appointment")
		return
	}
	sendJSON(w, r, http.StatusCreated, cita)
}
