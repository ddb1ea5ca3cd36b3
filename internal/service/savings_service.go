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

type savingsStore interface {
	Snapshot() *model.Ledger
	AddGoal(g model.SavingsGoal) error
	UpdateGoal(id uuid.UUID, name string, target decimal.Decimal, color string) error
	DeleteGoal(id uuid.UUID) error
	AddSavingsTransaction(goalID uuid.UUID, txn model.SavingsTransaction) error
}

// SavingsService validates and applies savings-goal mutations.
type SavingsService struct {
	store    savingsStore
	notifier Notifier
}

func NewSavingsService(store savingsStore, notifier Notifier) *SavingsService {
	return &SavingsService{store: store, notifier: notifier}
}

// GoalInput is the payload for creating or updating a savings goal.
type GoalInput struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Color         string          `json:"color"`
}

func (in *GoalInput) validate() error {
	in.Name = sanitizeText(in.Name)
	in.TargetAmount = sanitizeAmount(in.TargetAmount)
	in.CurrentAmount = sanitizeAmount(in.CurrentAmount)

	errs := apperror.ValidationErrors{}
	checkRequired(errs, "name", in.Name)
	if in.Name != "" {
		checkLength(errs, "name", in.Name, minNameLen, maxTextLen)
	}
	checkPositive(errs, "targetAmount", in.TargetAmount)
	checkNonNegative(errs, "currentAmount", in.CurrentAmount)
	if in.CurrentAmount.GreaterThan(in.TargetAmount) {
		errs.Add("currentAmount", "must not exceed the target")
	}
	return errs.AsError()
}

// CreateGoal adds a savings goal.
// ListGoals returns every savings goal in ledger order.
func (s *SavingsService) ListGoals() []model.SavingsGoal {
	return s.store.Snapshot().SavingsGoals
}

func (s *SavingsService) CreateGoal(ctx context.Context, in GoalInput) (*model.SavingsGoal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	goal := model.SavingsGoal{
		ID:            uuid.New(),
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Color:         in.Color,
	}
	if err := s.store.AddGoal(goal); err != nil {
		return nil, fmt.Errorf("adding savings goal: %w", err)
	}

	s.notifier.Notify(ctx, "notification.goal_added", map[string]string{"name": goal.Name})
	return &goal, nil
}

// UpdateGoal changes a goal's name, target, or color.
func (s *SavingsService) UpdateGoal(ctx context.Context, id uuid.UUID, in GoalInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := s.store.UpdateGoal(id, in.Name, in.TargetAmount, in.Color); err != nil {
		return fmt.Errorf("updating savings goal: %w", err)
	}
	return nil
}

// DeleteGoal removes a goal.
func (s *SavingsService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	snap := s.store.Snapshot()
	var name string
	if g := snap.FindGoal(id); g != nil {
		name = g.Name
	}

	if err := s.store.DeleteGoal(id); err != nil {
		return fmt.Errorf("deleting savings goal: %w", err)
	}

	s.notifier.Notify(ctx, "notification.goal_deleted", map[string]string{"name": name})
	return nil
}

// SavingsTransactionInput is the payload for a deposit or withdrawal.
type SavingsTransactionInput struct {
	Amount      decimal.Decimal              `json:"amount"`
	Type        model.SavingsTransactionType `json:"type"`
	Description string                       `json:"description"`
	Date        datetime.Date                `json:"date"`
}

func (in *SavingsTransactionInput) validate(today datetime.Date) error {
	in.Description = sanitizeText(in.Description)
	in.Amount = sanitizeAmount(in.Amount)
	if in.Date.IsZero() {
		in.Date = today
	}

	errs := apperror.ValidationErrors{}
	checkPositive(errs, "amount", in.Amount)
	checkRequired(errs, "description", in.Description)
	if in.Description != "" {
		checkLength(errs, "description", in.Description, minDescLen, maxTextLen)
	}
	if in.Type != model.SavingsAdd && in.Type != model.SavingsRemove {
		errs.Add("type", "must be add or remove")
	}
	checkNotFuture(errs, "date", in.Date, today)
	return errs.AsError()
}

// AddTransaction records a deposit or withdrawal on a goal.
func (s *SavingsService) AddTransaction(ctx context.Context, goalID uuid.UUID, in SavingsTransactionInput, today datetime.Date) (*model.SavingsTransaction, error) {
	if err := in.validate(today); err != nil {
		return nil, err
	}

	txn := model.SavingsTransaction{
		ID:          uuid.New(),
		Date:        in.Date,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: in.Description,
	}
	if err := s.store.AddSavingsTransaction(goalID, txn); err != nil {
		return nil, fmt.Errorf("adding savings transaction: %w", err)
	}

	snap := s.store.Snapshot()
	var name string
	if g := snap.FindGoal(goalID); g != nil {
		name = g.Name
	}
	key := "notification.savings_added"
	if in.Type == model.SavingsRemove {
		key = "notification.savings_removed"
	}
	s.notifier.Notify(ctx, key, map[string]string{
		"amount": currency.Format(txn.Amount, snap.Settings.Currency),
		"name":   name,
	})
	return &txn, nil
}
