package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/pkg/datetime"
)

// Text length bounds shared by the mutation contract.
const (
	minNameLen = 2
	minDescLen = 3
	maxTextLen = 100
	maxNameLen = 30
)

var textStripper = strings.NewReplacer("<", "", ">", "")

// sanitizeText trims whitespace and strips angle brackets from user input.
func sanitizeText(s string) string {
	return textStripper.Replace(strings.TrimSpace(s))
}

// sanitizeAmount rounds a monetary amount to two decimal places.
func sanitizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func checkRequired(errs apperror.ValidationErrors, field, value string) {
	if value == "" {
		errs.Add(field, "required")
	}
}

func checkLength(errs apperror.ValidationErrors, field, value string, min, max int) {
	n := len([]rune(value))
	if n < min {
		errs.Add(field, "too short")
	} else if n > max {
		errs.Add(field, "too long")
	}
}

func checkPositive(errs apperror.ValidationErrors, field string, value decimal.Decimal) {
	if !value.IsPositive() {
		errs.Add(field, "must be positive")
	}
}

func checkNonNegative(errs apperror.ValidationErrors, field string, value decimal.Decimal) {
	if value.IsNegative() {
		errs.Add(field, "must not be negative")
	}
}

func checkIntRange(errs apperror.ValidationErrors, field string, value, min, max int) {
	if value < min || value > max {
		errs.Add(field, "out of range")
	}
}

func checkRate(errs apperror.ValidationErrors, field string, value decimal.Decimal) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		errs.Add(field, "must be between 0 and 100")
	}
}

func checkNotFuture(errs apperror.ValidationErrors, field string, date, today datetime.Date) {
	if date.IsZero() {
		errs.Add(field, "required")
		return
	}
	if date.After(today) {
		errs.Add(field, "must not be in the future")
	}
}
