package handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/barbershop-admin/internal/domain"
)

type ServiceClient interface {
	ListByShop(ctx context.Context, shopID int) ([]domain.Service, error)
}

type ServiceHandler struct {
	services ServiceClient
	shopID   int
}

func NewServiceHandler(sc ServiceClient, defaultShopID int) *ServiceHandler {
	return &ServiceHandler{services: sc, shopID: defaultShopID}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	shop, err := shopID(r, h.shopID)
	if err != nil {
		sendError(w, r, "validation_failed", err.Error(), http.StatusBadRequest)
		return
	}

	services, err := h.services.ListByShop(r.Context(), shop)
	if err != nil {
		handleDownstreamError(w, r, err, "failed to fetch services")
		return
	}
	sendJSON(w, r, http.StatusOK, map[string]any{"servicios": services})
}
