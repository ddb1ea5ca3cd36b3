package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/pkg/datetime"
)

// DebtHandler exposes debt tracking, payments, auto-debit and payoff
// projections over HTTP.
type DebtHandler struct {
	service *service.DebtService
	now     func() datetime.Date
}

func NewDebtHandler(svc *service.DebtService, now func() datetime.Date) *DebtHandler {
	return &DebtHandler{service: svc, now: now}
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List())
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.DebtInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	debt, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, debt)
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.DebtInput
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

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// MakePayment records a payment against the debt balance.
func (h *DebtHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RecordPayment(r.Context(), id, input.Amount, h.now()); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAutoDebit enables or disables the monthly automatic payment for a
// debt.
func (h *DebtHandler) SetAutoDebit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetAutoDebit(r.Context(), id, input.Enabled, h.now()); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPayoffPlan simulates the amortization schedule for a debt. The
// monthlyPayment query parameter overrides the minimum payment.
func (h *DebtHandler) GetPayoffPlan(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	payment := decimal.Zero
	if raw := r.URL.Query().Get("monthlyPayment"); raw != "" {
		payment, err = decimal.NewFromString(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid monthlyPayment")
			return
		}
	}

	plan, err := h.service.PayoffPlan(r.Context(), id, payment)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}
