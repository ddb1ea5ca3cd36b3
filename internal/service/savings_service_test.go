package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

func newSavingsFixture(goals ...model.SavingsGoal) (*SavingsService, *store.Store) {
	st := store.New(&model.Ledger{SavingsGoals: goals, Settings: model.Settings{Language: "fr", Currency: "EUR"}})
	return NewSavingsService(st, NopNotifier{}), st
}

func TestSavingsService_CreateGoal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid goal", func(t *testing.T) {
		t.Parallel()

		svc, st := newSavingsFixture()
		goal, err := svc.CreateGoal(ctx, GoalInput{
			Name: "Vacances", TargetAmount: dec("1000"), CurrentAmount: dec("100"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Vacances", goal.Name)
		assert.Len(t, st.Snapshot().SavingsGoals, 1)
	})

	t.Run("current above target rejected", func(t *testing.T) {
		t.Parallel()

		svc, st := newSavingsFixture()
		_, err := svc.CreateGoal(ctx, GoalInput{
			Name: "Vacances", TargetAmount: dec("1000"), CurrentAmount: dec("1200"),
		})
		require.Error(t, err)

		var verrs apperror.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "currentAmount")
		assert.Empty(t, st.Snapshot().SavingsGoals)
	})

	t.Run("non-positive target rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newSavingsFixture()
		_, err := svc.CreateGoal(ctx, GoalInput{Name: "Vide", TargetAmount: dec("0")})
		require.Error(t, err)

		var verrs apperror.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "targetAmount")
	})
}

func TestSavingsService_AddTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	today := datetime.NewDate(2025, time.June, 20)

	goalID := uuid.New()
	newFixture := func() (*SavingsService, *store.Store) {
		return newSavingsFixture(model.SavingsGoal{
			ID: goalID, Name: "Vacances", TargetAmount: dec("1000"), CurrentAmount: dec("900"),
		})
	}

	t.Run("deposit clamps at target but keeps full transaction", func(t *testing.T) {
		t.Parallel()

		svc, st := newFixture()
		txn, err := svc.AddTransaction(ctx, goalID, SavingsTransactionInput{
			Amount: dec("200"), Type: model.SavingsAdd, Description: "prime",
		}, today)
		require.NoError(t, err)
		assert.Equal(t, "200", txn.Amount.String())
		assert.True(t, txn.Date.Equal(today)) // defaulted

		goal := st.Snapshot().SavingsGoals[0]
		assert.Equal(t, "1000", goal.CurrentAmount.String())
	})

	t.Run("invalid type rejected before the store", func(t *testing.T) {
		t.Parallel()

		svc, st := newFixture()
		_, err := svc.AddTransaction(ctx, goalID, SavingsTransactionInput{
			Amount: dec("50"), Type: "swap", Description: "bizarre",
		}, today)
		require.Error(t, err)

		var verrs apperror.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "type")
		assert.Empty(t, st.Snapshot().SavingsGoals[0].Transactions)
	})

	t.Run("unknown goal", func(t *testing.T) {
		t.Parallel()

		svc, _ := newFixture()
		_, err := svc.AddTransaction(ctx, uuid.New(), SavingsTransactionInput{
			Amount: dec("50"), Type: model.SavingsAdd, Description: "ailleurs",
		}, today)
		assert.Equal(t, 404, apperror.GetStatusCode(err))
	})
}
