package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/pkg/datetime"
)

// BudgetStatus classifies how much of a category's budget is consumed.
type BudgetStatus string

const (
	BudgetGood    BudgetStatus = "good"    // <= 80%
	BudgetWarning BudgetStatus = "warning" // > 80%
	BudgetOver    BudgetStatus = "over"    // > 100%
)

// CategorySummary is one category's consumption for the selected month.
type CategorySummary struct {
	Name       string          `json:"name"`
	Color      string          `json:"color,omitempty"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage float64         `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// GoalProgress is one savings goal's standing for the selected month.
// Month figures are the signed sum of the month's transactions, floored at
// zero; cumulative figures cover everything up to the month's end.
type GoalProgress struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Color              string          `json:"color,omitempty"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	MonthAmount        decimal.Decimal `json:"monthAmount"`
	CumulativeAmount   decimal.Decimal `json:"cumulativeAmount"`
	MonthProgress      float64         `json:"monthProgress"`
	CumulativeProgress float64         `json:"cumulativeProgress"`
}

// DebtProgress is one debt's payment standing for the selected month.
type DebtProgress struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	MinPayment         decimal.Decimal `json:"minPayment"`
	MonthAmount        decimal.Decimal `json:"monthAmount"`
	CumulativeAmount   decimal.Decimal `json:"cumulativeAmount"`
	InitialBalance     decimal.Decimal `json:"initialBalance"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
	MonthProgress      float64         `json:"monthProgress"`
	CumulativeProgress float64         `json:"cumulativeProgress"`
}

// PieSlice is one wedge of the category spending chart. Zero-value slices
// are omitted.
type PieSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color,omitempty"`
}

// TrendPoint is one month of the six-month spending trend. Income carries the
// currently configured revenue for every point; historical revenue
// configuration is not tracked.
type TrendPoint struct {
	Month             datetime.Month  `json:"month"`
	Label             string          `json:"label"`
	Spent             decimal.Decimal `json:"spent"`
	Income            decimal.Decimal `json:"income"`
	Savings           decimal.Decimal `json:"savings"`
	CumulativeSavings decimal.Decimal `json:"cumulativeSavings"`
}

// MonthNavigation describes the selected month relative to today.
type MonthNavigation struct {
	Current        datetime.Month `json:"current"`
	Previous       datetime.Month `json:"previous"`
	Next           datetime.Month `json:"next"`
	IsCurrentMonth bool           `json:"isCurrentMonth"`
	IsPastMonth    bool           `json:"isPastMonth"`
	IsFutureMonth  bool           `json:"isFutureMonth"`
}

// Dashboard is the full derived view for one month. It is computed from a
// ledger snapshot and never stored.
type Dashboard struct {
	Month      datetime.Month  `json:"month"`
	MonthLabel string          `json:"monthLabel"`
	Navigation MonthNavigation `json:"navigation"`

	Expenses   []Expense       `json:"expenses"`
	TotalSpent decimal.Decimal `json:"totalSpent"`

	TotalBudget decimal.Decimal   `json:"totalBudget"`
	Categories  []CategorySummary `json:"categories"`

	TotalRevenueConfigured decimal.Decimal `json:"totalRevenueConfigured"`
	TotalRevenueRealized   decimal.Decimal `json:"totalRevenueRealized"`
	SavingsRate            float64         `json:"savingsRate"`

	TotalRecurring decimal.Decimal `json:"totalRecurring"`

	Goals        []GoalProgress  `json:"goals"`
	TotalSavings decimal.Decimal `json:"totalSavings"`

	Debts     []DebtProgress  `json:"debts"`
	TotalDebt decimal.Decimal `json:"totalDebt"`

	PieChart []PieSlice   `json:"pieChart"`
	Trend    []TrendPoint `json:"trend"`
}

// PayoffEntry is one month of a debt amortization schedule.
type PayoffEntry struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// PayoffPlan projects how long a debt takes to clear at a fixed monthly
// payment. Capped is set when the projection hits the 360-month horizon
// before the balance reaches zero.
type PayoffPlan struct {
	DebtID         uuid.UUID       `json:"debtId"`
	DebtName       string          `json:"debtName"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Months         int             `json:"months"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Schedule       []PayoffEntry   `json:"schedule"`
	Capped         bool            `json:"capped"`
}
