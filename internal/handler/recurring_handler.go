package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
)

// RecurringHandler exposes recurring charge templates and the manual
// processing trigger over HTTP.
type RecurringHandler struct {
	service *service.RecurringService
	now     func() datetime.Date
}

func NewRecurringHandler(svc *service.RecurringService, now func() datetime.Date) *RecurringHandler {
	return &RecurringHandler{service: svc, now: now}
}

func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List())
}

func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.RecurringInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recurring, err := h.service.Create(r.Context(), input, h.now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, recurring)
}

func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.RecurringInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), id, input); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetActive pauses or resumes a recurring charge template.
func (h *RecurringHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetActive(r.Context(), id, input.Active); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Process materializes every due recurring charge immediately instead of
// waiting for the scheduler.
func (h *RecurringHandler) Process(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ProcessDue(r.Context(), h.now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"processed": count})
}
