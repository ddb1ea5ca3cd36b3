package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
	"github.com/shopspring/decimal"
)

// CategoryHandler exposes budget category management over HTTP.
type CategoryHandler struct {
	service *service.CategoryService
	now     func() datetime.Date
}

func NewCategoryHandler(svc *service.CategoryService, now func() datetime.Date) *CategoryHandler {
	return &CategoryHandler{service: svc, now: now}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List())
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.CategoryInput
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

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input struct {
		Budget decimal.Decimal `json:"budget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetBudget(r.Context(), id, input.Budget); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Optimize recomputes every budget from recent spending history and
// returns the applied suggestions keyed by category name.
func (h *CategoryHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	applied, err := h.service.OptimizeBudgets(r.Context(), h.now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, applied)
}
