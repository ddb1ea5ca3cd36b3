package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/currency"
	"github.com/mehdi559/poe/pkg/datetime"
)

type expenseStore interface {
	Snapshot() *model.Ledger
	AddExpense(e model.Expense) error
	UpdateExpense(e model.Expense) error
	DeleteExpense(id uuid.UUID) error
}

// ExpenseService validates and applies expense mutations.
type ExpenseService struct {
	store    expenseStore
	notifier Notifier
}

func NewExpenseService(store expenseStore, notifier Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// ExpenseInput is the payload for creating or updating an expense.
type ExpenseInput struct {
	Date        datetime.Date   `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (in *ExpenseInput) validate(today datetime.Date) error {
	in.Description = sanitizeText(in.Description)
	in.Category = sanitizeText(in.Category)
	in.Amount = sanitizeAmount(in.Amount)

	errs := apperror.ValidationErrors{}
	checkNotFuture(errs, "date", in.Date, today)
	checkRequired(errs, "category", in.Category)
	checkRequired(errs, "description", in.Description)
	if in.Description != "" {
		checkLength(errs, "description", in.Description, minDescLen, maxTextLen)
	}
	checkPositive(errs, "amount", in.Amount)
	return errs.AsError()
}

// Create records an expense dated today or earlier.
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput, today datetime.Date) (*model.Expense, error) {
	if err := in.validate(today); err != nil {
		return nil, err
	}

	exp := model.Expense{
		ID:          uuid.New(),
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
	}
	if err := s.store.AddExpense(exp); err != nil {
		return nil, fmt.Errorf("adding expense: %w", err)
	}

	curr := s.store.Snapshot().Settings.Currency
	s.notifier.Notify(ctx, "notification.expense_added", map[string]string{
		"description": exp.Description,
		"amount":      currency.Format(exp.Amount, curr),
	})
	return &exp, nil
}

// Update replaces an expense's fields, keeping any debt link.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, in ExpenseInput, today datetime.Date) error {
	if err := in.validate(today); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	var existing *model.Expense
	for i := range snap.Expenses {
		if snap.Expenses[i].ID == id {
			existing = &snap.Expenses[i]
			break
		}
	}
	if existing == nil {
		return apperror.NotFound("expense")
	}

	updated := model.Expense{
		ID:           id,
		Date:         in.Date,
		Category:     in.Category,
		Description:  in.Description,
		Amount:       in.Amount,
		LinkedDebtID: existing.LinkedDebtID,
	}
	if err := s.store.UpdateExpense(updated); err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteExpense(id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	s.notifier.Notify(ctx, "notification.expense_deleted", nil)
	return nil
}

// ListMonth returns the month's expenses, newest first.
func (s *ExpenseService) ListMonth(month datetime.Month) []model.Expense {
	snap := s.store.Snapshot()

	out := make([]model.Expense, 0)
	for _, e := range snap.Expenses {
		if month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}
