//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdi559/poe/internal/handler"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

func today() datetime.Date {
	return datetime.NewDate(2025, time.June, 20)
}

func now() time.Time {
	return time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
}

// newServer builds the full HTTP stack over a file-backed store rooted in
// a temp directory.
func newServer(t *testing.T) (*httptest.Server, *store.Store, string) {
	t.Helper()

	dataFile := filepath.Join(t.TempDir(), "ledger.json")
	persister := store.NewFileStore(dataFile)

	st := store.New(model.DefaultLedger())
	st.Subscribe(func(snapshot model.Ledger) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, persister.Save(ctx, snapshot))
	})

	notifier := service.NopNotifier{}
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(st, notifier), today)
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(st, notifier), today)
	debtHandler := handler.NewDebtHandler(service.NewDebtService(st, notifier), today)
	recurringHandler := handler.NewRecurringHandler(service.NewRecurringService(st, notifier), today)
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(st), today)
	exportHandler := handler.NewExportHandler(service.NewExportService(st, notifier), now)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/dashboard", dashboardHandler.Get)
	r.Post("/api/categories", categoryHandler.Create)
	r.Post("/api/expenses", expenseHandler.Create)
	r.Post("/api/debts", debtHandler.Create)
	r.Put("/api/debts/{id}/auto-debit", debtHandler.SetAutoDebit)
	r.Post("/api/recurring", recurringHandler.Create)
	r.Post("/api/recurring/process", recurringHandler.Process)
	r.Get("/api/export", exportHandler.ExportJSON)
	r.Post("/api/import", exportHandler.Import)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, st, dataFile
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAPI_ExpenseFlow(t *testing.T) {
	server, st, dataFile := newServer(t)

	// New category
	resp := postJSON(t, server.URL+"/api/categories", `{"name":"Santé","budget":120,"color":"#10B981"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Spend against it
	resp = postJSON(t, server.URL+"/api/expenses", `{"date":"2025-06-10","category":"Santé","description":"pharmacie","amount":32.4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Dashboard reflects the spending
	dashResp, err := http.Get(server.URL + "/api/dashboard?month=2025-06")
	require.NoError(t, err)
	defer func() { _ = dashResp.Body.Close() }()
	require.Equal(t, http.StatusOK, dashResp.StatusCode)

	var dash model.Dashboard
	require.NoError(t, json.NewDecoder(dashResp.Body).Decode(&dash))
	assert.Equal(t, "32.4", dash.TotalSpent.String())

	// Every mutation was persisted to disk
	raw, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "pharmacie")

	// A restart loads the same ledger back
	reloaded, err := store.NewFileStore(dataFile).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, len(st.Snapshot().Expenses), len(reloaded.Expenses))
}

func TestAPI_AutoDebitFlow(t *testing.T) {
	server, st, _ := newServer(t)

	resp := postJSON(t, server.URL+"/api/debts", `{"name":"Prêt auto","balance":5000,"minPayment":150,"rate":4.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var debt model.Debt
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&debt))

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/debts/"+debt.ID.String()+"/auto-debit", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = putResp.Body.Close() }()
	require.Equal(t, http.StatusNoContent, putResp.StatusCode)

	snap := st.Snapshot()
	require.NotNil(t, snap.FindCategory("Dettes"))
	require.Len(t, snap.RecurringExpenses, 1)
	assert.Equal(t, "Paiement automatique - Prêt auto", snap.RecurringExpenses[0].Description)

	// The 15th already passed, so the first occurrence lands today
	require.Len(t, snap.Expenses, 1)
	assert.Equal(t, "2025-06-20", snap.Expenses[0].Date.String())
}

func TestAPI_RecurringProcessIdempotent(t *testing.T) {
	server, st, _ := newServer(t)

	resp := postJSON(t, server.URL+"/api/recurring", `{"description":"Assurance","category":"Logement","amount":45,"dayOfMonth":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Day 5 already passed, so creation materialized next cycle's occurrence
	require.Len(t, st.Snapshot().Expenses, 1)
	assert.Equal(t, "2025-07-05", st.Snapshot().Expenses[0].Date.String())

	procResp := postJSON(t, server.URL+"/api/recurring/process", "")
	require.Equal(t, http.StatusOK, procResp.StatusCode)

	var result map[string]int
	require.NoError(t, json.NewDecoder(procResp.Body).Decode(&result))
	assert.Zero(t, result["processed"])
	assert.Len(t, st.Snapshot().Expenses, 1)
}
