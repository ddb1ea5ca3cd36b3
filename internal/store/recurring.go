package store

import (
	"github.com/google/uuid"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/datetime"
)

// AddRecurring appends a recurring charge. When the first occurrence is
// already due it is committed in the same mutation, so the template and its
// expense either both land or neither does.
func (s *Store) AddRecurring(r model.RecurringExpense, firstOccurrence *model.Expense) error {
	return s.mutate(func(l *model.Ledger) error {
		if l.FindCategory(r.Category) == nil {
			return apperror.ValidationError("category", "unknown category")
		}
		l.RecurringExpenses = append(l.RecurringExpenses, r)
		if firstOccurrence != nil {
			l.Expenses = append(l.Expenses, *firstOccurrence)
		}
		return nil
	})
}

// UpdateRecurring replaces a recurring charge by ID.
func (s *Store) UpdateRecurring(r model.RecurringExpense) error {
	return s.mutate(func(l *model.Ledger) error {
		if l.FindCategory(r.Category) == nil {
			return apperror.ValidationError("category", "unknown category")
		}
		for i := range l.RecurringExpenses {
			if l.RecurringExpenses[i].ID == r.ID {
				l.RecurringExpenses[i] = r
				return nil
			}
		}
		return apperror.NotFound("recurring expense")
	})
}

// SetRecurringActive toggles a recurring charge on or off.
func (s *Store) SetRecurringActive(id uuid.UUID, active bool) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.RecurringExpenses {
			if l.RecurringExpenses[i].ID == id {
				l.RecurringExpenses[i].Active = active
				return nil
			}
		}
		return apperror.NotFound("recurring expense")
	})
}

// DeleteRecurring removes a recurring charge by ID. Already-materialized
// expenses stay in history.
func (s *Store) DeleteRecurring(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.RecurringExpenses {
			if l.RecurringExpenses[i].ID == id {
				l.RecurringExpenses = append(l.RecurringExpenses[:i], l.RecurringExpenses[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("recurring expense")
	})
}

// RecurringRun is the outcome of one processing pass, committed atomically:
// materialized expenses, realized revenue transactions, and the
// lastProcessed stamps that make re-running the same cycle a no-op.
type RecurringRun struct {
	Expenses       []model.Expense
	ExpenseStamps  map[uuid.UUID]datetime.Date
	RevenueTxns    map[uuid.UUID][]model.RevenueTransaction
	RevenueStamps  map[uuid.UUID]datetime.Date
	ProcessedCount int
}

// Empty reports whether the run produced nothing to commit.
func (r RecurringRun) Empty() bool {
	return len(r.Expenses) == 0 && len(r.RevenueTxns) == 0
}

// CommitRecurringRun applies a processing pass in a single mutation.
func (s *Store) CommitRecurringRun(run RecurringRun) error {
	if run.Empty() {
		return nil
	}
	return s.mutate(func(l *model.Ledger) error {
		l.Expenses = append(l.Expenses, run.Expenses...)

		for i := range l.RecurringExpenses {
			if stamp, ok := run.ExpenseStamps[l.RecurringExpenses[i].ID]; ok {
				d := stamp
				l.RecurringExpenses[i].LastProcessed = &d
			}
		}

		for i := range l.Revenues {
			id := l.Revenues[i].ID
			if txns, ok := run.RevenueTxns[id]; ok {
				l.Revenues[i].Transactions = append(l.Revenues[i].Transactions, txns...)
			}
			if stamp, ok := run.RevenueStamps[id]; ok {
				d := stamp
				l.Revenues[i].LastProcessed = &d
			}
		}
		return nil
	})
}
