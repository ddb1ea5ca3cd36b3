package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
)

// SavingsHandler exposes savings goals and their deposit/withdrawal
// transactions over HTTP.
type SavingsHandler struct {
	service *service.SavingsService
	now     func() datetime.Date
}

func NewSavingsHandler(svc *service.SavingsService, now func() datetime.Date) *SavingsHandler {
	return &SavingsHandler{service: svc, now: now}
}

func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ListGoals())
}

func (h *SavingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *SavingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateGoal(r.Context(), id, input); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SavingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.DeleteGoal(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTransaction records a deposit into or withdrawal from a goal.
func (h *SavingsHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.SavingsTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.service.AddTransaction(r.Context(), id, input, h.now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, txn)
}
