package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
)

// AddGoal appends a savings goal.
func (s *Store) AddGoal(g model.SavingsGoal) error {
	return s.mutate(func(l *model.Ledger) error {
		l.SavingsGoals = append(l.SavingsGoals, g)
		return nil
	})
}

// UpdateGoal replaces a goal's editable fields.
func (s *Store) UpdateGoal(id uuid.UUID, name string, target decimal.Decimal, color string) error {
	return s.mutate(func(l *model.Ledger) error {
		goal := l.FindGoal(id)
		if goal == nil {
			return apperror.NotFound("savings goal")
		}
		goal.Name = name
		goal.TargetAmount = target
		if color != "" {
			goal.Color = color
		}
		// Shrinking the target below what is saved clamps the saved amount
		if goal.CurrentAmount.GreaterThan(goal.TargetAmount) {
			goal.CurrentAmount = goal.TargetAmount
		}
		return nil
	})
}

// DeleteGoal removes a goal and its transaction history.
func (s *Store) DeleteGoal(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.SavingsGoals {
			if l.SavingsGoals[i].ID == id {
				l.SavingsGoals = append(l.SavingsGoals[:i], l.SavingsGoals[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("savings goal")
	})
}

// AddSavingsTransaction appends a movement to a goal and adjusts its saved
// amount: deposits clamp at the target, withdrawals floor at zero. The
// transaction itself keeps its full amount either way.
func (s *Store) AddSavingsTransaction(goalID uuid.UUID, txn model.SavingsTransaction) error {
	return s.mutate(func(l *model.Ledger) error {
		goal := l.FindGoal(goalID)
		if goal == nil {
			return apperror.NotFound("savings goal")
		}

		switch txn.Type {
		case model.SavingsAdd:
			next := goal.CurrentAmount.Add(txn.Amount)
			if next.GreaterThan(goal.TargetAmount) {
				next = goal.TargetAmount
			}
			goal.CurrentAmount = next
		case model.SavingsRemove:
			next := goal.CurrentAmount.Sub(txn.Amount)
			if next.IsNegative() {
				next = decimal.Zero
			}
			goal.CurrentAmount = next
		default:
			return apperror.ValidationError("type", "must be add or remove")
		}

		goal.Transactions = append(goal.Transactions, txn)
		return nil
	})
}
