package store

import (
	"github.com/google/uuid"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
)

// AddRevenue appends an income source.
func (s *Store) AddRevenue(r model.Revenue) error {
	return s.mutate(func(l *model.Ledger) error {
		l.Revenues = append(l.Revenues, r)
		return nil
	})
}

// UpdateRevenue replaces an income source by ID, preserving its transaction
// history and processing stamp.
func (s *Store) UpdateRevenue(r model.Revenue) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.Revenues {
			if l.Revenues[i].ID == r.ID {
				r.Transactions = l.Revenues[i].Transactions
				r.LastProcessed = l.Revenues[i].LastProcessed
				l.Revenues[i] = r
				return nil
			}
		}
		return apperror.NotFound("revenue")
	})
}

// SetRevenueActive toggles an income source on or off.
func (s *Store) SetRevenueActive(id uuid.UUID, active bool) error {
	return s.mutate(func(l *model.Ledger) error {
		rev := l.FindRevenue(id)
		if rev == nil {
			return apperror.NotFound("revenue")
		}
		rev.Active = active
		return nil
	})
}

// DeleteRevenue removes an income source and its transactions.
func (s *Store) DeleteRevenue(id uuid.UUID) error {
	return s.mutate(func(l *model.Ledger) error {
		for i := range l.Revenues {
			if l.Revenues[i].ID == id {
				l.Revenues = append(l.Revenues[:i], l.Revenues[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("revenue")
	})
}

// AddRevenueTransaction records a realized income payment against a source.
func (s *Store) AddRevenueTransaction(revenueID uuid.UUID, txn model.RevenueTransaction) error {
	return s.mutate(func(l *model.Ledger) error {
		rev := l.FindRevenue(revenueID)
		if rev == nil {
			return apperror.NotFound("revenue")
		}
		rev.Transactions = append(rev.Transactions, txn)
		return nil
	})
}
