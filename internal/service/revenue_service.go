package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/datetime"
)

type revenueStore interface {
	Snapshot() *model.Ledger
	AddRevenue(r model.Revenue) error
	UpdateRevenue(r model.Revenue) error
	SetRevenueActive(id uuid.UUID, active bool) error
	DeleteRevenue(id uuid.UUID) error
	AddRevenueTransaction(revenueID uuid.UUID, txn model.RevenueTransaction) error
}

// RevenueService validates and applies income-source mutations.
type RevenueService struct {
	store    revenueStore
	notifier Notifier
}

func NewRevenueService(store revenueStore, notifier Notifier) *RevenueService {
	return &RevenueService{store: store, notifier: notifier}
}

// RevenueInput is the payload for creating or updating an income source.
type RevenueInput struct {
	Name        string                 `json:"name"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        model.RevenueType      `json:"type"`
	Frequency   model.RevenueFrequency `json:"frequency"`
	DayOfMonth  int                    `json:"dayOfMonth"`
	Description string                 `json:"description"`
	StartDate   datetime.Date          `json:"startDate"`
}

var validFrequencies = map[model.RevenueFrequency]bool{
	model.FrequencyWeekly:    true,
	model.FrequencyBiweekly:  true,
	model.FrequencyMonthly:   true,
	model.FrequencyQuarterly: true,
	model.FrequencyAnnually:  true,
	model.FrequencyIrregular: true,
}

func (in *RevenueInput) validate() error {
	in.Name = sanitizeText(in.Name)
	in.Description = sanitizeText(in.Description)
	in.Amount = sanitizeAmount(in.Amount)

	errs := apperror.ValidationErrors{}
	checkRequired(errs, "name", in.Name)
	if in.Name != "" {
		checkLength(errs, "name", in.Name, minNameLen, maxTextLen)
	}
	checkPositive(errs, "amount", in.Amount)
	if in.Type != model.RevenueFixed && in.Type != model.RevenueVariable {
		errs.Add("type", "must be fixed or variable")
	}
	if !validFrequencies[in.Frequency] {
		errs.Add("frequency", "unknown frequency")
	}
	// only fixed monthly revenues are auto-materialized; their payout day is
	// kept within every month's length
	if in.Type == model.RevenueFixed && in.Frequency == model.FrequencyMonthly && in.DayOfMonth != 0 {
		checkIntRange(errs, "dayOfMonth", in.DayOfMonth, 1, 28)
	}
	if in.StartDate.IsZero() {
		errs.Add("startDate", "required")
	}
	return errs.AsError()
}

// Create adds an income source.
// List returns every income source in ledger order.
func (s *RevenueService) List() []model.Revenue {
	return s.store.Snapshot().Revenues
}

func (s *RevenueService) Create(ctx context.Context, in RevenueInput) (*model.Revenue, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	rev := model.Revenue{
		ID:          uuid.New(),
		Name:        in.Name,
		Amount:      in.Amount,
		Type:        in.Type,
		Frequency:   in.Frequency,
		DayOfMonth:  in.DayOfMonth,
		Description: in.Description,
		StartDate:   in.StartDate,
		Active:      true,
	}
	if err := s.store.AddRevenue(rev); err != nil {
		return nil, fmt.Errorf("adding revenue: %w", err)
	}

	s.notifier.Notify(ctx, "notification.revenue_added", map[string]string{"name": rev.Name})
	return &rev, nil
}

// Update replaces an income source's configuration.
func (s *RevenueService) Update(ctx context.Context, id uuid.UUID, in RevenueInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	existing := snap.FindRevenue(id)
	if existing == nil {
		return apperror.NotFound("revenue")
	}

	updated := model.Revenue{
		ID:          id,
		Name:        in.Name,
		Amount:      in.Amount,
		Type:        in.Type,
		Frequency:   in.Frequency,
		DayOfMonth:  in.DayOfMonth,
		Description: in.Description,
		StartDate:   in.StartDate,
		Active:      existing.Active,
	}
	if err := s.store.UpdateRevenue(updated); err != nil {
		return fmt.Errorf("updating revenue: %w", err)
	}
	return nil
}

// SetActive toggles an income source.
func (s *RevenueService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.store.SetRevenueActive(id, active); err != nil {
		return fmt.Errorf("toggling revenue: %w", err)
	}
	return nil
}

// Delete removes an income source.
func (s *RevenueService) Delete(ctx context.Context, id uuid.UUID) error {
	snap := s.store.Snapshot()
	var name string
	if r := snap.FindRevenue(id); r != nil {
		name = r.Name
	}

	if err := s.store.DeleteRevenue(id); err != nil {
		return fmt.Errorf("deleting revenue: %w", err)
	}

	s.notifier.Notify(ctx, "notification.revenue_deleted", map[string]string{"name": name})
	return nil
}

// RevenueTransactionInput is the payload for recording a realized payment.
type RevenueTransactionInput struct {
	Date        datetime.Date   `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AddTransaction records an income payment that actually arrived.
func (s *RevenueService) AddTransaction(ctx context.Context, revenueID uuid.UUID, in RevenueTransactionInput, today datetime.Date) (*model.RevenueTransaction, error) {
	in.Description = sanitizeText(in.Description)
	in.Amount = sanitizeAmount(in.Amount)
	if in.Date.IsZero() {
		in.Date = today
	}

	errs := apperror.ValidationErrors{}
	checkPositive(errs, "amount", in.Amount)
	checkNotFuture(errs, "date", in.Date, today)
	if err := errs.AsError(); err != nil {
		return nil, err
	}

	txn := model.RevenueTransaction{
		ID:          uuid.New(),
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
	}
	if err := s.store.AddRevenueTransaction(revenueID, txn); err != nil {
		return nil, fmt.Errorf("adding revenue transaction: %w", err)
	}
	return &txn, nil
}
