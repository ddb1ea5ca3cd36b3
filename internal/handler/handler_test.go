package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

// fixedToday pins the clock so date-sensitive rules are deterministic.
func fixedToday() datetime.Date {
	return datetime.NewDate(2025, time.June, 20)
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
}

// newTestRouter wires every handler over a fresh in-memory store.
func newTestRouter(t *testing.T, ledger *model.Ledger) (*chi.Mux, *store.Store) {
	t.Helper()

	st := store.New(ledger)
	notifier := service.NopNotifier{}

	categoryHandler := NewCategoryHandler(service.NewCategoryService(st, notifier), fixedToday)
	expenseHandler := NewExpenseHandler(service.NewExpenseService(st, notifier), fixedToday)
	debtHandler := NewDebtHandler(service.NewDebtService(st, notifier), fixedToday)
	dashboardHandler := NewDashboardHandler(service.NewDashboardService(st), fixedToday)
	exportHandler := NewExportHandler(service.NewExportService(st, notifier), fixedNow)

	r := chi.NewRouter()
	r.Get("/api/dashboard", dashboardHandler.Get)
	r.Get("/api/categories", categoryHandler.List)
	r.Post("/api/categories", categoryHandler.Create)
	r.Delete("/api/categories/{id}", categoryHandler.Delete)
	r.Post("/api/expenses", expenseHandler.Create)
	r.Post("/api/debts/{id}/payment", debtHandler.MakePayment)
	r.Get("/api/debts/{id}/payoff-plan", debtHandler.GetPayoffPlan)
	r.Get("/api/export/csv", exportHandler.ExportCSV)
	r.Post("/api/import", exportHandler.Import)
	return r, st
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		r, st := newTestRouter(t, &model.Ledger{})

		body := `{"name":"Santé","budget":120,"color":"#10B981"}`
		req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "Santé", created.Name)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Len(t, st.Snapshot().Categories, 1)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRouter(t, &model.Ledger{
			Categories: []model.Category{{ID: uuid.New(), Name: "Santé", Budget: decimal.NewFromInt(100)}},
		})

		body := `{"name":"santé","budget":120}`
		req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRouter(t, &model.Ledger{})

		req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExpenseHandler_Create_ValidationFields(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &model.Ledger{
		Categories: []model.Category{{ID: uuid.New(), Name: "Alimentation", Budget: decimal.NewFromInt(400)}},
	})

	body := `{"date":"2025-06-10","category":"Alimentation","description":"x","amount":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "description")
	assert.Contains(t, resp.Fields, "amount")
}

func TestDebtHandler_Payment(t *testing.T) {
	t.Parallel()

	debtID := uuid.New()
	ledger := &model.Ledger{
		Debts: []model.Debt{{
			ID:             debtID,
			Name:           "Prêt auto",
			InitialBalance: decimal.NewFromInt(1000),
			Balance:        decimal.NewFromInt(1000),
			MinPayment:     decimal.NewFromInt(100),
			Rate:           decimal.NewFromInt(5),
		}},
	}
	r, st := newTestRouter(t, ledger)

	req := httptest.NewRequest(http.MethodPost, "/api/debts/"+debtID.String()+"/payment", strings.NewReader(`{"amount":250}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "750", st.Snapshot().Debts[0].Balance.String())

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/debts/not-a-uuid/payment", strings.NewReader(`{"amount":250}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown debt", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/debts/"+uuid.NewString()+"/payment", strings.NewReader(`{"amount":250}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDebtHandler_PayoffPlan(t *testing.T) {
	t.Parallel()

	debtID := uuid.New()
	r, _ := newTestRouter(t, &model.Ledger{
		Debts: []model.Debt{{
			ID:             debtID,
			Name:           "Carte",
			InitialBalance: decimal.NewFromInt(1000),
			Balance:        decimal.NewFromInt(1000),
			MinPayment:     decimal.NewFromInt(100),
			Rate:           decimal.NewFromInt(12),
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/debts/"+debtID.String()+"/payoff-plan?monthlyPayment=200", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var plan model.PayoffPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.False(t, plan.Capped)
	assert.Greater(t, plan.Months, 0)
}

func TestDashboardHandler_Get(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, model.DefaultLedger())

	t.Run("explicit month", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard?month=2025-05", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var dash model.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
		assert.Equal(t, "2025-05", dash.Month.String())
	})

	t.Run("invalid month", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard?month=may-2025", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExportHandler_CSV(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &model.Ledger{
		Categories: []model.Category{{ID: uuid.New(), Name: "Alimentation", Budget: decimal.NewFromInt(400)}},
		Expenses: []model.Expense{{
			ID:          uuid.New(),
			Date:        datetime.NewDate(2025, time.June, 3),
			Category:    "Alimentation",
			Description: "marché",
			Amount:      decimal.RequireFromString("25.5"),
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expenses_2025-06-20.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Catégorie,Description,Montant", lines[0])
	assert.Equal(t, `2025-06-03,Alimentation,"marché",25.50`, lines[1])
}

func TestExportHandler_Import_RejectsBadEnvelope(t *testing.T) {
	t.Parallel()

	r, st := newTestRouter(t, model.DefaultLedger())
	before := st.Snapshot()

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"version":"1.0.0","data":{}}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, before, st.Snapshot())
}
