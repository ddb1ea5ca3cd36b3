package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/currency"
	"github.com/mehdi559/poe/pkg/datetime"
)

type settingsStore interface {
	Snapshot() *model.Ledger
	UpdateSettings(settings model.Settings)
}

// SettingsService validates and applies profile and preference changes.
type SettingsService struct {
	store settingsStore
}

func NewSettingsService(store settingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// SettingsInput is the payload for updating settings. Nil fields keep their
// current value.
type SettingsInput struct {
	UserName       *string          `json:"userName,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	MonthlyIncome  *decimal.Decimal `json:"monthlyIncome,omitempty"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
	SelectedMonth  *datetime.Month  `json:"selectedMonth,omitempty"`
	Language       *string          `json:"language,omitempty"`
	DarkMode       *bool            `json:"darkMode,omitempty"`
	ShowBalances   *bool            `json:"showBalances,omitempty"`
}

// Update merges the input over the current settings.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*model.Settings, error) {
	current := s.store.Snapshot().Settings
	errs := apperror.ValidationErrors{}

	if in.UserName != nil {
		name := sanitizeText(*in.UserName)
		checkRequired(errs, "userName", name)
		if name != "" {
			checkLength(errs, "userName", name, minNameLen, maxTextLen)
		}
		current.UserName = name
	}
	if in.Currency != nil {
		if !currency.IsValid(*in.Currency) {
			errs.Add("currency", "unsupported currency")
		}
		current.Currency = currency.Currency(*in.Currency)
	}
	if in.MonthlyIncome != nil {
		income := sanitizeAmount(*in.MonthlyIncome)
		checkNonNegative(errs, "monthlyIncome", income)
		current.MonthlyIncome = income
	}
	if in.InitialBalance != nil {
		current.InitialBalance = sanitizeAmount(*in.InitialBalance)
	}
	if in.SelectedMonth != nil {
		if in.SelectedMonth.IsZero() {
			errs.Add("selectedMonth", "required")
		}
		current.SelectedMonth = *in.SelectedMonth
	}
	if in.Language != nil {
		current.Language = *in.Language
	}
	if in.DarkMode != nil {
		current.DarkMode = *in.DarkMode
	}
	if in.ShowBalances != nil {
		current.ShowBalances = *in.ShowBalances
	}

	if err := errs.AsError(); err != nil {
		return nil, err
	}

	s.store.UpdateSettings(current)
	return &current, nil
}

// Get returns the current settings.
func (s *SettingsService) Get() model.Settings {
	return s.store.Snapshot().Settings
}
