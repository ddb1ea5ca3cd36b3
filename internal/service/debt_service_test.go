package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

func newDebtFixture(debts ...model.Debt) (*DebtService, *store.Store) {
	st := store.New(&model.Ledger{Debts: debts, Settings: model.Settings{Language: "fr", Currency: "EUR"}})
	return NewDebtService(st, NopNotifier{}), st
}

func TestDebtService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid debt starts with balance as initial balance", func(t *testing.T) {
		t.Parallel()

		svc, st := newDebtFixture()
		debt, err := svc.Create(ctx, DebtInput{
			Name: "Prêt auto", Balance: dec("1000"), MinPayment: dec("100"), Rate: dec("5"),
		})
		require.NoError(t, err)
		assert.Equal(t, "1000", debt.InitialBalance.String())
		assert.Equal(t, "1000", debt.Balance.String())
		assert.Len(t, st.Snapshot().Debts, 1)
	})

	t.Run("invalid fields are collected per field", func(t *testing.T) {
		t.Parallel()

		svc, _ := newDebtFixture()
		_, err := svc.Create(ctx, DebtInput{
			Name: "x", Balance: dec("-10"), MinPayment: dec("0"), Rate: dec("150"),
		})
		require.Error(t, err)

		var verrs apperror.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "name")
		assert.Contains(t, verrs, "balance")
		assert.Contains(t, verrs, "minPayment")
		assert.Contains(t, verrs, "rate")
	})
}

func TestDebtService_RecordPayment_OverBalance(t *testing.T) {
	t.Parallel()

	debtID := uuid.New()
	svc, st := newDebtFixture(model.Debt{
		ID: debtID, Name: "Prêt auto", InitialBalance: dec("1000"),
		Balance: dec("1000"), MinPayment: dec("100"), Rate: dec("5"),
	})

	err := svc.RecordPayment(context.Background(), debtID, dec("1500"), datetime.NewDate(2025, time.June, 10))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetStatusCode(err))
	assert.Equal(t, "1000", st.Snapshot().Debts[0].Balance.String())
}

func TestDebtService_PayoffPlan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("terminates and clamps the final payment", func(t *testing.T) {
		t.Parallel()

		debtID := uuid.New()
		svc, _ := newDebtFixture(model.Debt{
			ID: debtID, Name: "Carte", InitialBalance: dec("1000"),
			Balance: dec("1000"), MinPayment: dec("100"), Rate: dec("12"),
		})

		plan, err := svc.PayoffPlan(ctx, debtID, dec("100"))
		require.NoError(t, err)
		assert.False(t, plan.Capped)
		assert.Greater(t, plan.Months, 10)
		assert.LessOrEqual(t, plan.Months, 12)

		last := plan.Schedule[len(plan.Schedule)-1]
		assert.Equal(t, "0", last.Balance.String())
		assert.True(t, last.Payment.LessThanOrEqual(dec("100")))
		assert.True(t, plan.TotalInterest.IsPositive())
		assert.Equal(t, plan.TotalPaid.String(), dec("1000").Add(plan.TotalInterest).String())
	})

	t.Run("zero payment defaults to the minimum payment", func(t *testing.T) {
		t.Parallel()

		debtID := uuid.New()
		svc, _ := newDebtFixture(model.Debt{
			ID: debtID, Name: "Carte", InitialBalance: dec("500"),
			Balance: dec("500"), MinPayment: dec("50"), Rate: dec("0"),
		})

		plan, err := svc.PayoffPlan(ctx, debtID, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, 10, plan.Months)
		assert.Equal(t, "0", plan.TotalInterest.String())
	})

	t.Run("payment below interest is capped", func(t *testing.T) {
		t.Parallel()

		debtID := uuid.New()
		svc, _ := newDebtFixture(model.Debt{
			ID: debtID, Name: "Gouffre", InitialBalance: dec("100000"),
			Balance: dec("100000"), MinPayment: dec("100"), Rate: dec("30"),
		})

		plan, err := svc.PayoffPlan(ctx, debtID, dec("100"))
		require.NoError(t, err)
		assert.True(t, plan.Capped)
	})

	t.Run("unknown debt", func(t *testing.T) {
		t.Parallel()

		svc, _ := newDebtFixture()
		_, err := svc.PayoffPlan(ctx, uuid.New(), dec("100"))
		assert.Equal(t, 404, apperror.GetStatusCode(err))
	})
}
