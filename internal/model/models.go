// Package model defines the domain entities of the finance ledger.
package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/pkg/currency"
	"github.com/mehdi559/poe/pkg/datetime"
)

// Category is a named budget envelope. Expenses reference it by name.
type Category struct {
	ID     uuid.UUID       `json:"id" db:"id"`
	Name   string          `json:"name" db:"name"`
	Budget decimal.Decimal `json:"budget" db:"budget"`
	Color  string          `json:"color,omitempty" db:"color"`
}

// Expense is a single dated spending record.
type Expense struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Date         datetime.Date   `json:"date" db:"date"`
	Category     string          `json:"category" db:"category"`
	Description  string          `json:"description" db:"description"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	LinkedDebtID *uuid.UUID      `json:"linkedDebtId,omitempty" db:"linked_debt_id"`
}

// RecurringExpense is a monthly charge template. The recurring processor
// materializes one Expense per calendar cycle when the scheduled day passes.
type RecurringExpense struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Description   string          `json:"description" db:"description"`
	Category      string          `json:"category" db:"category"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	DayOfMonth    int             `json:"dayOfMonth" db:"day_of_month"`
	Active        bool            `json:"active" db:"active"`
	LastProcessed *datetime.Date  `json:"lastProcessed,omitempty" db:"last_processed"`
	LinkedDebtID  *uuid.UUID      `json:"linkedDebtId,omitempty" db:"linked_debt_id"`
}

// DebtPayment records one payment against a debt.
type DebtPayment struct {
	ID     uuid.UUID       `json:"id" db:"id"`
	Date   datetime.Date   `json:"date" db:"date"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
}

// Debt is an outstanding liability with a payment history.
// Balance never goes below zero; payments beyond it are rejected upstream.
type Debt struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance" db:"initial_balance"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	MinPayment     decimal.Decimal `json:"minPayment" db:"min_payment"`
	Rate           decimal.Decimal `json:"rate" db:"rate"` // annual percentage rate, 0-100
	AutoDebit      bool            `json:"autoDebit" db:"auto_debit"`
	PaymentHistory []DebtPayment   `json:"paymentHistory" db:"-"`
}

// SavingsTransactionType distinguishes deposits from withdrawals.
type SavingsTransactionType string

const (
	SavingsAdd    SavingsTransactionType = "add"
	SavingsRemove SavingsTransactionType = "remove"
)

// SavingsTransaction is one movement on a savings goal.
type SavingsTransaction struct {
	ID          uuid.UUID              `json:"id" db:"id"`
	Date        datetime.Date          `json:"date" db:"date"`
	Amount      decimal.Decimal        `json:"amount" db:"amount"`
	Type        SavingsTransactionType `json:"type" db:"type"`
	Description string                 `json:"description" db:"description"`
}

// SavingsGoal tracks progress toward a target amount.
// CurrentAmount stays clamped within [0, TargetAmount].
type SavingsGoal struct {
	ID            uuid.UUID            `json:"id" db:"id"`
	Name          string               `json:"name" db:"name"`
	TargetAmount  decimal.Decimal      `json:"targetAmount" db:"target_amount"`
	CurrentAmount decimal.Decimal      `json:"currentAmount" db:"current_amount"`
	Color         string               `json:"color,omitempty" db:"color"`
	Transactions  []SavingsTransaction `json:"transactions" db:"-"`
}

// RevenueType distinguishes fixed from variable income sources.
type RevenueType string

const (
	RevenueFixed    RevenueType = "fixed"
	RevenueVariable RevenueType = "variable"
)

// RevenueFrequency is how often an income source pays out.
type RevenueFrequency string

const (
	FrequencyWeekly    RevenueFrequency = "weekly"
	FrequencyBiweekly  RevenueFrequency = "biweekly"
	FrequencyMonthly   RevenueFrequency = "monthly"
	FrequencyQuarterly RevenueFrequency = "quarterly"
	FrequencyAnnually  RevenueFrequency = "annually"
	FrequencyIrregular RevenueFrequency = "irregular"
)

// RevenueTransaction records one realized income payment.
type RevenueTransaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Date        datetime.Date   `json:"date" db:"date"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
}

// Revenue is a configured income source. Fixed monthly revenues are
// materialized into transactions by the recurring processor.
type Revenue struct {
	ID            uuid.UUID            `json:"id" db:"id"`
	Name          string               `json:"name" db:"name"`
	Amount        decimal.Decimal      `json:"amount" db:"amount"`
	Type          RevenueType          `json:"type" db:"type"`
	Frequency     RevenueFrequency     `json:"frequency" db:"frequency"`
	DayOfMonth    int                  `json:"dayOfMonth,omitempty" db:"day_of_month"`
	Description   string               `json:"description,omitempty" db:"description"`
	StartDate     datetime.Date        `json:"startDate" db:"start_date"`
	Active        bool                 `json:"active" db:"active"`
	LastProcessed *datetime.Date       `json:"lastProcessed,omitempty" db:"last_processed"`
	Transactions  []RevenueTransaction `json:"transactions" db:"-"`
}

// Settings holds user-level preferences and profile values.
type Settings struct {
	UserName       string            `json:"userName" db:"user_name"`
	Currency       currency.Currency `json:"currency" db:"currency"`
	MonthlyIncome  decimal.Decimal   `json:"monthlyIncome" db:"monthly_income"`
	InitialBalance decimal.Decimal   `json:"initialBalance" db:"initial_balance"`
	SelectedMonth  datetime.Month    `json:"selectedMonth" db:"selected_month"`
	Language       string            `json:"language" db:"language"`
	DarkMode       bool              `json:"darkMode" db:"dark_mode"`
	ShowBalances   bool              `json:"showBalances" db:"show_balances"`
}

// Ledger is the full application state: every collection plus settings.
// It is the unit of persistence and the input to the computation layer.
type Ledger struct {
	Categories        []Category         `json:"categories"`
	Expenses          []Expense          `json:"expenses"`
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	Debts             []Debt             `json:"debts"`
	SavingsGoals      []SavingsGoal      `json:"savingsGoals"`
	Revenues          []Revenue          `json:"revenues"`
	Settings          Settings           `json:"settings"`
}

// DefaultLedger returns the state a fresh installation starts from.
func DefaultLedger() *Ledger {
	return &Ledger{
		Categories: []Category{
			{ID: uuid.New(), Name: "Logement", Budget: decimal.NewFromInt(800), Color: "#3B82F6"},
			{ID: uuid.New(), Name: "Alimentation", Budget: decimal.NewFromInt(400), Color: "#10B981"},
			{ID: uuid.New(), Name: "Transport", Budget: decimal.NewFromInt(150), Color: "#F59E0B"},
			{ID: uuid.New(), Name: "Loisirs", Budget: decimal.NewFromInt(200), Color: "#8B5CF6"},
		},
		Expenses:          []Expense{},
		RecurringExpenses: []RecurringExpense{},
		Debts:             []Debt{},
		SavingsGoals:      []SavingsGoal{},
		Revenues:          []Revenue{},
		Settings: Settings{
			UserName:      "Utilisateur",
			Currency:      currency.DefaultCurrency,
			SelectedMonth: datetime.CurrentMonth(),
			Language:      "fr",
			ShowBalances:  true,
		},
	}
}

// Clone returns a deep copy of the ledger, safe to hand to readers while the
// original keeps mutating.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		Categories:        append([]Category(nil), l.Categories...),
		Expenses:          make([]Expense, len(l.Expenses)),
		RecurringExpenses: make([]RecurringExpense, len(l.RecurringExpenses)),
		Debts:             make([]Debt, len(l.Debts)),
		SavingsGoals:      make([]SavingsGoal, len(l.SavingsGoals)),
		Revenues:          make([]Revenue, len(l.Revenues)),
		Settings:          l.Settings,
	}

	for i, e := range l.Expenses {
		if e.LinkedDebtID != nil {
			id := *e.LinkedDebtID
			e.LinkedDebtID = &id
		}
		c.Expenses[i] = e
	}

	for i, r := range l.RecurringExpenses {
		if r.LastProcessed != nil {
			d := *r.LastProcessed
			r.LastProcessed = &d
		}
		if r.LinkedDebtID != nil {
			id := *r.LinkedDebtID
			r.LinkedDebtID = &id
		}
		c.RecurringExpenses[i] = r
	}

	for i, d := range l.Debts {
		d.PaymentHistory = append([]DebtPayment(nil), d.PaymentHistory...)
		c.Debts[i] = d
	}

	for i, g := range l.SavingsGoals {
		g.Transactions = append([]SavingsTransaction(nil), g.Transactions...)
		c.SavingsGoals[i] = g
	}

	for i, r := range l.Revenues {
		if r.LastProcessed != nil {
			d := *r.LastProcessed
			r.LastProcessed = &d
		}
		r.Transactions = append([]RevenueTransaction(nil), r.Transactions...)
		c.Revenues[i] = r
	}

	return c
}

// FindCategory returns the category with the given name (case-sensitive),
// or nil if absent.
func (l *Ledger) FindCategory(name string) *Category {
	for i := range l.Categories {
		if l.Categories[i].Name == name {
			return &l.Categories[i]
		}
	}
	return nil
}

// FindDebt returns the debt with the given ID, or nil if absent.
func (l *Ledger) FindDebt(id uuid.UUID) *Debt {
	for i := range l.Debts {
		if l.Debts[i].ID == id {
			return &l.Debts[i]
		}
	}
	return nil
}

// FindGoal returns the savings goal with the given ID, or nil if absent.
func (l *Ledger) FindGoal(id uuid.UUID) *SavingsGoal {
	for i := range l.SavingsGoals {
		if l.SavingsGoals[i].ID == id {
			return &l.SavingsGoals[i]
		}
	}
	return nil
}

// FindRevenue returns the revenue with the given ID, or nil if absent.
func (l *Ledger) FindRevenue(id uuid.UUID) *Revenue {
	for i := range l.Revenues {
		if l.Revenues[i].ID == id {
			return &l.Revenues[i]
		}
	}
	return nil
}
