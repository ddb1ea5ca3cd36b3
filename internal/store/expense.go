package store

import (
	"github.com/google/uuid"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
)

// AddExpense appends a spending record.
func (s *Store) AddExpense(e model.Expense) error {
	return s.mutate(func(l *model.Ledger) error {
		if l.FindCategory(e.Category) == nil {
			return apperror.ValidationError("category", "unknown category")
		}
		l.Expenses = append(l.Expenses, e)
		return nil
	})
}

// UpdateExpense replaces an expense by ID.
func (s *Store) UpdateExpense(e model.Expense) error {
	return s.mutate(func(l *model.Ledger) error {
		if l.FindCategory(e.Category) == nil {
			return apperror.ValidationError("category", "unknown category")
		}
		for i := range l.Expenses {
			if l.Expenses[i].ID == e.ID {
				l.Expenses[i] = e
				return nil
			}
		}
		return apperror.NotFound("expense")
	})
}

// DeleteExpense removes an expense by ID.
func (s *Store) DeleteExpense(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.Expenses {
			if l.Expenses[i].ID == id {
				l.Expenses = append(l.Expenses[:i], l.Expenses[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("expense")
	})
}
