package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mehdi559/poe/internal/service"
)

// SettingsHandler exposes the user profile and preferences.
type SettingsHandler struct {
	service *service.SettingsService
}

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Get())
}

// Update merges the supplied fields over the current settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.service.Update(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
