package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/currency"
)

// exportVersion tags the envelope format.
const exportVersion = "1.0.0"

// csvHeader matches the export format the application has always produced.
const csvHeader = "Date,Catégorie,Description,Montant"

type exportStore interface {
	Snapshot() *model.Ledger
	ReplaceAll(ledger *model.Ledger)
	Reset()
}

// ExportService serializes the ledger for backup and restores it from
// uploaded envelopes.
type ExportService struct {
	store    exportStore
	notifier Notifier
}

func NewExportService(store exportStore, notifier Notifier) *ExportService {
	return &ExportService{store: store, notifier: notifier}
}

// ExportEnvelope is the backup document format.
type ExportEnvelope struct {
	Version   string     `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	Data      ExportData `json:"data"`
}

// ExportData carries the ledger's collections plus the profile values.
type ExportData struct {
	UserName          string                   `json:"userName"`
	Categories        []model.Category         `json:"categories"`
	Expenses          []model.Expense          `json:"expenses"`
	SavingsGoals      []model.SavingsGoal      `json:"savingsGoals"`
	RecurringExpenses []model.RecurringExpense `json:"recurringExpenses"`
	Debts             []model.Debt             `json:"debts"`
	Revenues          []model.Revenue          `json:"revenues"`
	MonthlyIncome     decimal.Decimal          `json:"monthlyIncome"`
	SelectedCurrency  currency.Currency        `json:"selectedCurrency"`
	InitialBalance    decimal.Decimal          `json:"initialBalance"`
}

// ExportJSON produces the full backup envelope.
func (s *ExportService) ExportJSON(now time.Time) *ExportEnvelope {
	snap := s.store.Snapshot()
	return &ExportEnvelope{
		Version:   exportVersion,
		Timestamp: now.UTC(),
		Data: ExportData{
			UserName:          snap.Settings.UserName,
			Categories:        snap.Categories,
			Expenses:          snap.Expenses,
			SavingsGoals:      snap.SavingsGoals,
			RecurringExpenses: snap.RecurringExpenses,
			Debts:             snap.Debts,
			Revenues:          snap.Revenues,
			MonthlyIncome:     snap.Settings.MonthlyIncome,
			SelectedCurrency:  snap.Settings.Currency,
			InitialBalance:    snap.Settings.InitialBalance,
		},
	}
}

// ImportJSON restores a backup. The envelope must carry at least categories
// and expenses; anything else missing falls back to empty. The swap is
// all-or-nothing: a rejected envelope leaves the current state untouched.
func (s *ExportService) ImportJSON(ctx context.Context, raw []byte) error {
	var envelope ExportEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperror.BadRequest("invalid backup file")
	}
	if envelope.Data.Categories == nil || envelope.Data.Expenses == nil {
		return apperror.BadRequest("backup is missing categories or expenses")
	}

	current := s.store.Snapshot()
	incoming := &model.Ledger{
		Categories:        envelope.Data.Categories,
		Expenses:          envelope.Data.Expenses,
		RecurringExpenses: orEmptyRecurring(envelope.Data.RecurringExpenses),
		Debts:             orEmptyDebts(envelope.Data.Debts),
		SavingsGoals:      orEmptyGoals(envelope.Data.SavingsGoals),
		Revenues:          orEmptyRevenues(envelope.Data.Revenues),
		Settings:          current.Settings,
	}
	if envelope.Data.UserName != "" {
		incoming.Settings.UserName = envelope.Data.UserName
	}
	if envelope.Data.SelectedCurrency != "" {
		incoming.Settings.Currency = envelope.Data.SelectedCurrency
	}
	incoming.Settings.MonthlyIncome = envelope.Data.MonthlyIncome
	incoming.Settings.InitialBalance = envelope.Data.InitialBalance

	s.store.ReplaceAll(incoming)
	s.notifier.Notify(ctx, "notification.data_imported", nil)
	return nil
}

// Reset discards all data and restores the default state.
func (s *ExportService) Reset(ctx context.Context) {
	s.store.Reset()
	s.notifier.Notify(ctx, "notification.data_reset", nil)
}

// ExportCSV renders every expense as CSV in ledger order. Descriptions are
// always quoted.
func (s *ExportService) ExportCSV() string {
	snap := s.store.Snapshot()

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")
	for _, e := range snap.Expenses {
		desc := strings.ReplaceAll(e.Description, `"`, `""`)
		fmt.Fprintf(&b, "%s,%s,\"%s\",%s\n", e.Date.String(), e.Category, desc, e.Amount.StringFixed(2))
	}
	return b.String()
}

func orEmptyRecurring(v []model.RecurringExpense) []model.RecurringExpense {
	if v == nil {
		return []model.RecurringExpense{}
	}
	return v
}

func orEmptyDebts(v []model.Debt) []model.Debt {
	if v == nil {
		return []model.Debt{}
	}
	return v
}

func orEmptyGoals(v []model.SavingsGoal) []model.SavingsGoal {
	if v == nil {
		return []model.SavingsGoal{}
	}
	return v
}

func orEmptyRevenues(v []model.Revenue) []model.Revenue {
	if v == nil {
		return []model.Revenue{}
	}
	return v
}
