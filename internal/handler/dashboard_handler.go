package handler

import (
	"net/http"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
)

// DashboardHandler serves the derived monthly dashboard.
type DashboardHandler struct {
	service *service.DashboardService
	now     func() datetime.Date
}

func NewDashboardHandler(svc *service.DashboardService, now func() datetime.Date) *DashboardHandler {
	return &DashboardHandler{service: svc, now: now}
}

// Get returns the dashboard for the requested month. The month query
// parameter defaults to the current month.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	month, err := queryMonth(r, today)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	respondJSON(w, http.StatusOK, h.service.ForMonth(month, today))
}
