package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/currency"
	"github.com/mehdi559/poe/pkg/datetime"
)

// payoffHorizonMonths caps amortization projections.
const payoffHorizonMonths = 360

type debtStore interface {
	Snapshot() *model.Ledger
	AddDebt(d model.Debt) error
	UpdateDebt(id uuid.UUID, name string, minPayment, rate decimal.Decimal) error
	DeleteDebt(id uuid.UUID) error
	RecordPayment(id uuid.UUID, amount decimal.Decimal, date datetime.Date) error
	SetAutoDebit(id uuid.UUID, enabled bool, today datetime.Date) error
}

// DebtService validates and applies debt mutations and computes payoff
// projections.
type DebtService struct {
	store    debtStore
	notifier Notifier
}

func NewDebtService(store debtStore, notifier Notifier) *DebtService {
	return &DebtService{store: store, notifier: notifier}
}

// DebtInput is the payload for creating or updating a debt.
type DebtInput struct {
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	MinPayment decimal.Decimal `json:"minPayment"`
	Rate       decimal.Decimal `json:"rate"`
}

func (in *DebtInput) validate() error {
	in.Name = sanitizeText(in.Name)
	in.Balance = sanitizeAmount(in.Balance)
	in.MinPayment = sanitizeAmount(in.MinPayment)

	errs := apperror.ValidationErrors{}
	checkRequired(errs, "name", in.Name)
	if in.Name != "" {
		checkLength(errs, "name", in.Name, minNameLen, maxTextLen)
	}
	checkNonNegative(errs, "balance", in.Balance)
	checkPositive(errs, "minPayment", in.MinPayment)
	checkRate(errs, "rate", in.Rate)
	return errs.AsError()
}

// Create adds a debt with its starting balance.
// List returns every tracked debt in ledger order.
func (s *DebtService) List() []model.Debt {
	return s.store.Snapshot().Debts
}

func (s *DebtService) Create(ctx context.Context, in DebtInput) (*model.Debt, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	debt := model.Debt{
		ID:             uuid.New(),
		Name:           in.Name,
		InitialBalance: in.Balance,
		Balance:        in.Balance,
		MinPayment:     in.MinPayment,
		Rate:           in.Rate,
	}
	if err := s.store.AddDebt(debt); err != nil {
		return nil, fmt.Errorf("adding debt: %w", err)
	}

	s.notifier.Notify(ctx, "notification.debt_added", map[string]string{"name": debt.Name})
	return &debt, nil
}

// Update changes a debt's name, minimum payment, or rate. The balance only
// moves through payments.
func (s *DebtService) Update(ctx context.Context, id uuid.UUID, in DebtInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := s.store.UpdateDebt(id, in.Name, in.MinPayment, in.Rate); err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}
	return nil
}

// Delete removes a debt and its auto-debit artifacts.
func (s *DebtService) Delete(ctx context.Context, id uuid.UUID) error {
	snap := s.store.Snapshot()
	var name string
	if d := snap.FindDebt(id); d != nil {
		name = d.Name
	}

	if err := s.store.DeleteDebt(id); err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	s.notifier.Notify(ctx, "notification.debt_deleted", map[string]string{"name": name})
	return nil
}

// RecordPayment applies a payment dated today. The store rejects amounts
// above the outstanding balance.
func (s *DebtService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, today datetime.Date) error {
	amount = sanitizeAmount(amount)
	if err := s.store.RecordPayment(id, amount, today); err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	snap := s.store.Snapshot()
	var name string
	if d := snap.FindDebt(id); d != nil {
		name = d.Name
	}
	s.notifier.Notify(ctx, "notification.payment_recorded", map[string]string{
		"amount": currency.Format(amount, snap.Settings.Currency),
		"name":   name,
	})
	return nil
}

// SetAutoDebit toggles automatic monthly payment for a debt.
func (s *DebtService) SetAutoDebit(ctx context.Context, id uuid.UUID, enabled bool, today datetime.Date) error {
	if err := s.store.SetAutoDebit(id, enabled, today); err != nil {
		return fmt.Errorf("toggling auto debit: %w", err)
	}

	snap := s.store.Snapshot()
	var name string
	if d := snap.FindDebt(id); d != nil {
		name = d.Name
	}
	key := "notification.autodebit_enabled"
	if !enabled {
		key = "notification.autodebit_disabled"
	}
	s.notifier.Notify(ctx, key, map[string]string{"name": name})
	return nil
}

// PayoffPlan projects the amortization schedule for a debt at the given
// monthly payment (the debt's minimum payment when zero). Interest accrues
// monthly at rate/12; the final payment is clamped to what remains.
func (s *DebtService) PayoffPlan(ctx context.Context, id uuid.UUID, monthlyPayment decimal.Decimal) (*model.PayoffPlan, error) {
	snap := s.store.Snapshot()
	debt := snap.FindDebt(id)
	if debt == nil {
		return nil, apperror.NotFound("debt")
	}

	if monthlyPayment.IsZero() {
		monthlyPayment = debt.MinPayment
	}
	if !monthlyPayment.IsPositive() {
		return nil, apperror.ValidationError("monthlyPayment", "must be positive")
	}

	hundred := decimal.NewFromInt(100)
	twelve := decimal.NewFromInt(12)
	monthlyRate := debt.Rate.Div(hundred).Div(twelve)

	plan := &model.PayoffPlan{
		DebtID:         debt.ID,
		DebtName:       debt.Name,
		MonthlyPayment: monthlyPayment,
		TotalInterest:  decimal.Zero,
		TotalPaid:      decimal.Zero,
	}

	balance := debt.Balance
	for month := 1; balance.IsPositive(); month++ {
		if month > payoffHorizonMonths {
			plan.Capped = true
			break
		}

		interest := balance.Mul(monthlyRate).Round(2)
		payment := monthlyPayment
		if payment.GreaterThan(balance.Add(interest)) {
			payment = balance.Add(interest)
		}
		principal := payment.Sub(interest)
		if !principal.IsPositive() {
			// payment never catches up with interest
			plan.Capped = true
			break
		}

		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		plan.Schedule = append(plan.Schedule, model.PayoffEntry{
			Month:     month,
			Payment:   payment,
			Interest:  interest,
			Principal: principal,
			Balance:   balance,
		})
		plan.Months = month
		plan.TotalInterest = plan.TotalInterest.Add(interest)
		plan.TotalPaid = plan.TotalPaid.Add(payment)
	}

	return plan, nil
}
