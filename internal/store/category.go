package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
)

// AddCategory appends a new budget category. Names are unique,
// case-insensitively.
func (s *Store) AddCategory(c model.Category) error {
	return s.mutate(func(l *model.Ledger) error {
		for _, existing := range l.Categories {
			if strings.EqualFold(existing.Name, c.Name) {
				return apperror.Conflict("a category with this name already exists")
			}
		}
		l.Categories = append(l.Categories, c)
		return nil
	})
}

// UpdateCategory replaces a category's fields. Renaming migrates every
// expense and recurring charge carrying the old name, so history stays
// attached to the category.
func (s *Store) UpdateCategory(id uuid.UUID, name string, budget decimal.Decimal, color string) error {
	return s.mutate(func(l *model.Ledger) error {
		var cat *model.Category
		for i := range l.Categories {
			if l.Categories[i].ID == id {
				cat = &l.Categories[i]
				break
			}
		}
		if cat == nil {
			return apperror.NotFound("category")
		}

		if !strings.EqualFold(cat.Name, name) {
			for _, other := range l.Categories {
				if other.ID != id && strings.EqualFold(other.Name, name) {
					return apperror.Conflict("a category with this name already exists")
				}
			}
		}

		oldName := cat.Name
		cat.Name = name
		cat.Budget = budget
		if color != "" {
			cat.Color = color
		}

		if oldName != name {
			for i := range l.Expenses {
				if l.Expenses[i].Category == oldName {
					l.Expenses[i].Category = name
				}
			}
			for i := range l.RecurringExpenses {
				if l.RecurringExpenses[i].Category == oldName {
					l.RecurringExpenses[i].Category = name
				}
			}
		}
		return nil
	})
}

// DeleteCategory removes a category and every expense recorded under it.
func (s *Store) DeleteCategory(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		idx := -1
		for i := range l.Categories {
			if l.Categories[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return apperror.NotFound("category")
		}

		name := l.Categories[idx].Name
		l.Categories = append(l.Categories[:idx], l.Categories[idx+1:]...)

		kept := l.Expenses[:0]
		for _, e := range l.Expenses {
			if e.Category != name {
				kept = append(kept, e)
			}
		}
		l.Expenses = kept
		return nil
	})
}

// SetBudget updates a single category's budget.
func (s *Store) SetBudget(id uuid.UUID, budget decimal.Decimal) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.Categories {
			if l.Categories[i].ID == id {
				l.Categories[i].Budget = budget
				return nil
			}
		}
		return apperror.NotFound("category")
	})
}

// OptimizeBudgets applies a new budget per category in one mutation.
// Categories absent from the map keep their budget.
func (s *Store) OptimizeBudgets(budgets map[uuid.UUID]decimal.Decimal) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.Categories {
			if b, ok := budgets[l.Categories[i].ID]; ok {
				l.Categories[i].Budget = b
			}
		}
		return nil
	})
}
