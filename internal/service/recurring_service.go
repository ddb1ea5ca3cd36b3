package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/logger"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

// Suffixes distinguishing materialized records from manual ones.
const (
	recurringSuffix = " (récurrente)"
	fixedPaySuffix  = " (fixe mensuel)"
)

type recurringStore interface {
	Snapshot() *model.Ledger
	AddRecurring(r model.RecurringExpense, firstOccurrence *model.Expense) error
	UpdateRecurring(r model.RecurringExpense) error
	SetRecurringActive(id uuid.UUID, active bool) error
	DeleteRecurring(id uuid.UUID) error
	CommitRecurringRun(run store.RecurringRun) error
}

// RecurringService manages recurring charge templates and materializes due
// occurrences into real expenses and revenue transactions.
type RecurringService struct {
	store    recurringStore
	notifier Notifier
}

func NewRecurringService(store recurringStore, notifier Notifier) *RecurringService {
	return &RecurringService{store: store, notifier: notifier}
}

// RecurringInput is the payload for creating or updating a recurring charge.
type RecurringInput struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DayOfMonth  int             `json:"dayOfMonth"`
	Active      *bool           `json:"active,omitempty"`
}

func (in *RecurringInput) validate() error {
	in.Description = sanitizeText(in.Description)
	in.Category = sanitizeText(in.Category)
	in.Amount = sanitizeAmount(in.Amount)

	errs := apperror.ValidationErrors{}
	checkRequired(errs, "description", in.Description)
	if in.Description != "" {
		checkLength(errs, "description", in.Description, minDescLen, maxTextLen)
	}
	checkRequired(errs, "category", in.Category)
	checkPositive(errs, "amount", in.Amount)
	checkIntRange(errs, "dayOfMonth", in.DayOfMonth, 1, 31)
	return errs.AsError()
}

// List returns every recurring charge template in ledger order.
func (s *RecurringService) List() []model.RecurringExpense {
	return s.store.Snapshot().RecurringExpenses
}

// Create adds a recurring charge and materializes its first occurrence in
// the same commit: this month's scheduled day when it has not passed yet,
// next month's otherwise. The template starts stamped so the next processing
// run skips the cycle already covered.
func (s *RecurringService) Create(ctx context.Context, in RecurringInput, today datetime.Date) (*model.RecurringExpense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	cycle := today.Month()
	first := cycle.Day(in.DayOfMonth)
	if in.DayOfMonth < today.Day() {
		first = cycle.Next().Day(in.DayOfMonth)
	}

	rec := model.RecurringExpense{
		ID:            uuid.New(),
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		DayOfMonth:    in.DayOfMonth,
		Active:        true,
		LastProcessed: &first,
	}
	occurrence := &model.Expense{
		ID:          uuid.New(),
		Date:        first,
		Category:    in.Category,
		Description: in.Description + recurringSuffix,
		Amount:      in.Amount,
	}

	if err := s.store.AddRecurring(rec, occurrence); err != nil {
		return nil, fmt.Errorf("adding recurring expense: %w", err)
	}

	s.notifier.Notify(ctx, "notification.recurring_added", map[string]string{"description": rec.Description})
	return &rec, nil
}

// Update replaces a recurring charge's configuration, keeping its processing
// stamp and debt link.
func (s *RecurringService) Update(ctx context.Context, id uuid.UUID, in RecurringInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	var existing *model.RecurringExpense
	for i := range snap.RecurringExpenses {
		if snap.RecurringExpenses[i].ID == id {
			existing = &snap.RecurringExpenses[i]
			break
		}
	}
	if existing == nil {
		return apperror.NotFound("recurring expense")
	}

	active := existing.Active
	if in.Active != nil {
		active = *in.Active
	}
	updated := model.RecurringExpense{
		ID:            id,
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		DayOfMonth:    in.DayOfMonth,
		Active:        active,
		LastProcessed: existing.LastProcessed,
		LinkedDebtID:  existing.LinkedDebtID,
	}
	if err := s.store.UpdateRecurring(updated); err != nil {
		return fmt.Errorf("updating recurring expense: %w", err)
	}
	return nil
}

// SetActive pauses or resumes a recurring charge.
func (s *RecurringService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.store.SetRecurringActive(id, active); err != nil {
		return fmt.Errorf("toggling recurring expense: %w", err)
	}
	return nil
}

// Delete removes a recurring charge, leaving past occurrences in history.
func (s *RecurringService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteRecurring(id); err != nil {
		return fmt.Errorf("deleting recurring expense: %w", err)
	}
	s.notifier.Notify(ctx, "notification.recurring_deleted", nil)
	return nil
}

// ProcessDue materializes every recurring charge and fixed monthly revenue
// whose scheduled day for the current cycle has arrived. Each item catches
// up at most one cycle per run and a cycle is never processed twice, so
// re-running on the same day is a no-op. Returns the number of items
// materialized.
func (s *RecurringService) ProcessDue(ctx context.Context, now datetime.Date) (int, error) {
	snap := s.store.Snapshot()
	cycle := now.Month()

	run := store.RecurringRun{
		ExpenseStamps: make(map[uuid.UUID]datetime.Date),
		RevenueTxns:   make(map[uuid.UUID][]model.RevenueTransaction),
		RevenueStamps: make(map[uuid.UUID]datetime.Date),
	}

	for _, rec := range snap.RecurringExpenses {
		if !rec.Active {
			continue
		}
		target := cycle.Day(rec.DayOfMonth)
		if !dueThisCycle(rec.LastProcessed, target, now) {
			continue
		}

		run.Expenses = append(run.Expenses, model.Expense{
			ID:           uuid.New(),
			Date:         target,
			Category:     rec.Category,
			Description:  rec.Description + recurringSuffix,
			Amount:       rec.Amount,
			LinkedDebtID: rec.LinkedDebtID,
		})
		run.ExpenseStamps[rec.ID] = target
		run.ProcessedCount++
	}

	for _, rev := range snap.Revenues {
		if !rev.Active || rev.Type != model.RevenueFixed || rev.Frequency != model.FrequencyMonthly {
			continue
		}
		day := rev.DayOfMonth
		if day == 0 {
			day = rev.StartDate.Day()
		}
		if day == 0 {
			day = 1
		}
		target := cycle.Day(day)
		if !dueThisCycle(rev.LastProcessed, target, now) {
			continue
		}

		run.RevenueTxns[rev.ID] = append(run.RevenueTxns[rev.ID], model.RevenueTransaction{
			ID:          uuid.New(),
			Date:        target,
			Amount:      rev.Amount,
			Description: rev.Name + fixedPaySuffix,
		})
		run.RevenueStamps[rev.ID] = target
		run.ProcessedCount++
	}

	if run.Empty() {
		return 0, nil
	}

	if err := s.store.CommitRecurringRun(run); err != nil {
		return 0, fmt.Errorf("committing recurring run: %w", err)
	}

	logger.FromContext(ctx).Info("recurring items processed", "count", run.ProcessedCount)
	s.notifier.Notify(ctx, "notification.recurring_run", map[string]string{
		"count": fmt.Sprintf("%d", run.ProcessedCount),
	})
	return run.ProcessedCount, nil
}

// dueThisCycle reports whether an item stamped lastProcessed should
// materialize for target. The stamp pins one occurrence per calendar month
// and also covers targets at or before it, so an item created with a stamp
// in the next cycle is not retroactively charged. The target date must
// have arrived.
func dueThisCycle(lastProcessed *datetime.Date, target, now datetime.Date) bool {
	if target.After(now) {
		return false
	}
	if lastProcessed == nil {
		return true
	}
	return lastProcessed.Before(target) && lastProcessed.Month() != target.Month()
}
