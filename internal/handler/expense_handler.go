package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
)

// ExpenseHandler exposes expense CRUD over HTTP.
type ExpenseHandler struct {
	service *service.ExpenseService
	now     func() datetime.Date
}

func NewExpenseHandler(svc *service.ExpenseService, now func() datetime.Date) *ExpenseHandler {
	return &ExpenseHandler{service: svc, now: now}
}

// List returns the expenses of a single month, newest first. The month
// query parameter defaults to the current month.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	respondJSON(w, http.StatusOK, h.service.ListMonth(month))
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.service.Create(r.Context(), input, h.now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), id, input, h.now()); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
