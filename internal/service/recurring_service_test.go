package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

func newRecurringFixture(recs ...model.RecurringExpense) (*RecurringService, *store.Store) {
	ledger := &model.Ledger{
		Categories: []model.Category{
			{ID: uuid.New(), Name: "Logement", Budget: dec("800")},
			{ID: uuid.New(), Name: "Loisirs", Budget: dec("200")},
		},
		RecurringExpenses: recs,
		Settings:          model.Settings{Language: "fr"},
	}
	st := store.New(ledger)
	return NewRecurringService(st, NopNotifier{}), st
}

func TestRecurringService_ProcessDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("due item materializes once on the day after", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Assurance", Category: "Logement",
			Amount: dec("45"), DayOfMonth: 15, Active: true,
		})
		now := datetime.NewDate(2025, time.June, 16)

		count, err := svc.ProcessDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		snap := st.Snapshot()
		require.Len(t, snap.Expenses, 1)
		exp := snap.Expenses[0]
		assert.Equal(t, "2025-06-15", exp.Date.String())
		assert.Equal(t, "Assurance (récurrente)", exp.Description)
		assert.Equal(t, "45", exp.Amount.String())

		// re-running the same cycle is a no-op
		count, err = svc.ProcessDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Len(t, st.Snapshot().Expenses, 1)
	})

	t.Run("not yet due this cycle", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Assurance", Category: "Logement",
			Amount: dec("45"), DayOfMonth: 15, Active: true,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 14))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, st.Snapshot().Expenses)
	})

	t.Run("inactive items are skipped", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Salle de sport", Category: "Loisirs",
			Amount: dec("30"), DayOfMonth: 1, Active: false,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 16))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, st.Snapshot().Expenses)
	})

	t.Run("new cycle processes again", func(t *testing.T) {
		t.Parallel()

		last := datetime.NewDate(2025, time.May, 15)
		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Assurance", Category: "Logement",
			Amount: dec("45"), DayOfMonth: 15, Active: true, LastProcessed: &last,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 15))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		snap := st.Snapshot()
		require.Len(t, snap.Expenses, 1)
		assert.Equal(t, "2025-06-15", snap.Expenses[0].Date.String())
	})

	t.Run("no backfill of skipped cycles", func(t *testing.T) {
		t.Parallel()

		last := datetime.NewDate(2025, time.March, 15)
		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Assurance", Category: "Logement",
			Amount: dec("45"), DayOfMonth: 15, Active: true, LastProcessed: &last,
		})

		// three months later, only the current cycle materializes
		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 20))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		snap := st.Snapshot()
		require.Len(t, snap.Expenses, 1)
		assert.Equal(t, "2025-06-15", snap.Expenses[0].Date.String())
	})

	t.Run("next cycle stamp is not retro charged", func(t *testing.T) {
		t.Parallel()

		// templates created after their scheduled day carry next month's stamp
		last := datetime.NewDate(2025, time.July, 20)
		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Internet", Category: "Logement",
			Amount: dec("40"), DayOfMonth: 20, Active: true, LastProcessed: &last,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 25))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, st.Snapshot().Expenses)
	})

	t.Run("day 31 clamps in short months", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture(model.RecurringExpense{
			ID: uuid.New(), Description: "Loyer", Category: "Logement",
			Amount: dec("750"), DayOfMonth: 31, Active: true,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.February, 28))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "2025-02-28", st.Snapshot().Expenses[0].Date.String())
	})
}

func TestRecurringService_ProcessDue_Revenues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newFixture := func(revs ...model.Revenue) (*RecurringService, *store.Store) {
		st := store.New(&model.Ledger{Revenues: revs, Settings: model.Settings{Language: "fr"}})
		return NewRecurringService(st, NopNotifier{}), st
	}

	t.Run("fixed monthly revenue materializes a transaction", func(t *testing.T) {
		t.Parallel()

		revID := uuid.New()
		svc, st := newFixture(model.Revenue{
			ID: revID, Name: "Salaire", Amount: dec("2400"),
			Type: model.RevenueFixed, Frequency: model.FrequencyMonthly,
			DayOfMonth: 28, StartDate: datetime.NewDate(2025, time.January, 1), Active: true,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 28))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		rev := st.Snapshot().Revenues[0]
		require.Len(t, rev.Transactions, 1)
		assert.Equal(t, "2025-06-28", rev.Transactions[0].Date.String())
		assert.Equal(t, "Salaire (fixe mensuel)", rev.Transactions[0].Description)
		require.NotNil(t, rev.LastProcessed)
		assert.Equal(t, "2025-06-28", rev.LastProcessed.String())
	})

	t.Run("day falls back to start date", func(t *testing.T) {
		t.Parallel()

		svc, st := newFixture(model.Revenue{
			ID: uuid.New(), Name: "Pension", Amount: dec("300"),
			Type: model.RevenueFixed, Frequency: model.FrequencyMonthly,
			StartDate: datetime.NewDate(2025, time.January, 5), Active: true,
		})

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 6))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "2025-06-05", st.Snapshot().Revenues[0].Transactions[0].Date.String())
	})

	t.Run("variable and non-monthly sources are skipped", func(t *testing.T) {
		t.Parallel()

		svc, st := newFixture(
			model.Revenue{
				ID: uuid.New(), Name: "Freelance", Amount: dec("600"),
				Type: model.RevenueVariable, Frequency: model.FrequencyIrregular,
				StartDate: datetime.NewDate(2025, time.January, 1), Active: true,
			},
			model.Revenue{
				ID: uuid.New(), Name: "Prime", Amount: dec("1000"),
				Type: model.RevenueFixed, Frequency: model.FrequencyAnnually,
				StartDate: datetime.NewDate(2025, time.January, 1), Active: true,
			},
		)

		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 30))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		for _, rev := range st.Snapshot().Revenues {
			assert.Empty(t, rev.Transactions)
		}
	})
}

func TestRecurringService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("day still ahead lands this cycle", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture()
		today := datetime.NewDate(2025, time.June, 10)

		rec, err := svc.Create(ctx, RecurringInput{
			Description: "Internet", Category: "Logement", Amount: dec("40"), DayOfMonth: 20,
		}, today)
		require.NoError(t, err)
		require.NotNil(t, rec.LastProcessed)
		assert.Equal(t, "2025-06-20", rec.LastProcessed.String())

		snap := st.Snapshot()
		require.Len(t, snap.Expenses, 1)
		assert.Equal(t, "2025-06-20", snap.Expenses[0].Date.String())
		assert.Equal(t, "Internet (récurrente)", snap.Expenses[0].Description)

		// the pre-stamped cycle is not processed again
		count, err := svc.ProcessDue(ctx, datetime.NewDate(2025, time.June, 21))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("day already passed lands next cycle", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture()
		today := datetime.NewDate(2025, time.June, 25)

		rec, err := svc.Create(ctx, RecurringInput{
			Description: "Internet", Category: "Logement", Amount: dec("40"), DayOfMonth: 20,
		}, today)
		require.NoError(t, err)
		require.NotNil(t, rec.LastProcessed)
		assert.Equal(t, "2025-07-20", rec.LastProcessed.String())
		assert.Equal(t, "2025-07-20", st.Snapshot().Expenses[0].Date.String())
	})

	t.Run("validation failures leave the store untouched", func(t *testing.T) {
		t.Parallel()

		svc, st := newRecurringFixture()
		_, err := svc.Create(ctx, RecurringInput{
			Description: "x", Category: "", Amount: dec("0"), DayOfMonth: 42,
		}, datetime.NewDate(2025, time.June, 10))
		require.Error(t, err)
		assert.Empty(t, st.Snapshot().RecurringExpenses)
		assert.Empty(t, st.Snapshot().Expenses)
	})
}
