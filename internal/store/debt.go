package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/datetime"
)

// DebtCategoryName is the category auto-debit expenses are filed under.
// It is created on first use if missing.
const DebtCategoryName = "Dettes"

// autoDebitDay is the day of month automatic debt payments are scheduled on.
const autoDebitDay = 15

// AddDebt appends a debt.
func (s *Store) AddDebt(d model.Debt) error {
	return s.mutate(func(l *model.Ledger) error {
		l.Debts = append(l.Debts, d)
		return nil
	})
}

// UpdateDebt replaces a debt's editable fields, leaving balance and payment
// history untouched.
func (s *Store) UpdateDebt(id uuid.UUID, name string, minPayment, rate decimal.Decimal) error {
	return s.mutate(func(l *model.Ledger) error {
		debt := l.FindDebt(id)
		if debt == nil {
			return apperror.NotFound("debt")
		}
		debt.Name = name
		debt.MinPayment = minPayment
		debt.Rate = rate
		return nil
	})
}

// DeleteDebt removes a debt along with its auto-debit artifacts: the linked
// recurring charge and every expense tagged with this debt's ID.
func (s *Store) DeleteDebt(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		idx := -1
		for i := range l.Debts {
			if l.Debts[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return apperror.NotFound("debt")
		}

		l.Debts = append(l.Debts[:idx], l.Debts[idx+1:]...)
		removeDebtArtifacts(l, id)
		return nil
	})
}

// RecordPayment applies a payment to a debt. The amount must be positive and
// not exceed the outstanding balance; the balance floors at zero.
func (s *Store) RecordPayment(id uuid.UUID, amount decimal.Decimal, date datetime.Date) error {
	return s.mutate(func(l *model.Ledger) error {
		debt := l.FindDebt(id)
		if debt == nil {
			return apperror.NotFound("debt")
		}
		if !amount.IsPositive() {
			return apperror.ValidationError("amount", "payment must be positive")
		}
		if amount.GreaterThan(debt.Balance) {
			return apperror.ValidationError("amount", "payment exceeds remaining balance")
		}

		debt.Balance = debt.Balance.Sub(amount)
		if debt.Balance.IsNegative() {
			debt.Balance = decimal.Zero
		}
		debt.PaymentHistory = append(debt.PaymentHistory, model.DebtPayment{
			ID:     uuid.New(),
			Date:   date,
			Amount: amount,
		})
		return nil
	})
}

// SetAutoDebit toggles automatic payment for a debt.
//
// Enabling creates a recurring charge for the minimum payment on the 15th,
// plus an immediate expense: dated today when this month's 15th has already
// passed, dated the upcoming 15th otherwise. Disabling tears down the linked
// recurring charge and every expense it produced.
func (s *Store) SetAutoDebit(id uuid.UUID, enabled bool, today datetime.Date) error {
	return s.mutate(func(l *model.Ledger) error {
		debt := l.FindDebt(id)
		if debt == nil {
			return apperror.NotFound("debt")
		}
		if debt.AutoDebit == enabled {
			return nil
		}
		debt.AutoDebit = enabled

		if !enabled {
			removeDebtArtifacts(l, id)
			return nil
		}

		ensureCategory(l, DebtCategoryName)

		scheduled := today.Month().Day(autoDebitDay)
		expenseDate := scheduled
		if !scheduled.After(today) {
			expenseDate = today
		}

		debtID := debt.ID
		l.RecurringExpenses = append(l.RecurringExpenses, model.RecurringExpense{
			ID:            uuid.New(),
			Description:   "Paiement automatique - " + debt.Name,
			Category:      DebtCategoryName,
			Amount:        debt.MinPayment,
			DayOfMonth:    autoDebitDay,
			Active:        true,
			LastProcessed: &expenseDate,
			LinkedDebtID:  &debtID,
		})
		l.Expenses = append(l.Expenses, model.Expense{
			ID:           uuid.New(),
			Date:         expenseDate,
			Category:     DebtCategoryName,
			Description:  "Paiement automatique - " + debt.Name,
			Amount:       debt.MinPayment,
			LinkedDebtID: &debtID,
		})
		return nil
	})
}

// removeDebtArtifacts drops the recurring charge and expenses linked to a
// debt.
func removeDebtArtifacts(l *model.Ledger, debtID uuid.UUID) {
	keptRecurring := l.RecurringExpenses[:0]
	for _, r := range l.RecurringExpenses {
		if r.LinkedDebtID == nil || *r.LinkedDebtID != debtID {
			keptRecurring = append(keptRecurring, r)
		}
	}
	l.RecurringExpenses = keptRecurring

	keptExpenses := l.Expenses[:0]
	for _, e := range l.Expenses {
		if e.LinkedDebtID == nil || *e.LinkedDebtID != debtID {
			keptExpenses = append(keptExpenses, e)
		}
	}
	l.Expenses = keptExpenses
}

func ensureCategory(l *model.Ledger, name string) {
	if l.FindCategory(name) != nil {
		return
	}
	l.Categories = append(l.Categories, model.Category{
		ID:     uuid.New(),
		Name:   name,
		Budget: decimal.Zero,
		Color:  "#EF4444",
	})
}
