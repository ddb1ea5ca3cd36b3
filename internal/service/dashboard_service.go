package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/datetime"
)

// trendMonths is the span of the spending trend, selected month included.
const trendMonths = 6

var oneHundred = decimal.NewFromInt(100)

// DashboardService derives the monthly view from ledger snapshots. It holds
// no state of its own; everything is recomputed from the snapshot on demand.
type DashboardService struct {
	store interface{ Snapshot() *model.Ledger }
}

func NewDashboardService(store interface{ Snapshot() *model.Ledger }) *DashboardService {
	return &DashboardService{store: store}
}

// ForMonth builds the dashboard for the given month against the current
// state.
func (s *DashboardService) ForMonth(month datetime.Month, now datetime.Date) *model.Dashboard {
	return BuildDashboard(s.store.Snapshot(), month, now)
}

// BuildDashboard computes the full derived view for one month. It is a pure
// function of its inputs: same ledger, month, and reference date always
// yield the same dashboard.
func BuildDashboard(ledger *model.Ledger, month datetime.Month, now datetime.Date) *model.Dashboard {
	d := &model.Dashboard{
		Month:      month,
		MonthLabel: month.Label(),
		Navigation: buildNavigation(month, now),
	}

	d.Expenses = monthExpenses(ledger, month)
	for _, e := range d.Expenses {
		d.TotalSpent = d.TotalSpent.Add(e.Amount)
	}

	d.Categories, d.TotalBudget = buildCategorySummaries(ledger, d.Expenses)
	d.PieChart = buildPieChart(d.Categories)

	d.TotalRevenueConfigured = configuredRevenue(ledger)
	d.TotalRevenueRealized = realizedRevenue(ledger, month)
	d.SavingsRate = savingsRate(d.TotalRevenueConfigured, d.TotalSpent)

	for _, rec := range ledger.RecurringExpenses {
		if rec.Active {
			d.TotalRecurring = d.TotalRecurring.Add(rec.Amount)
		}
	}

	d.Goals, d.TotalSavings = buildGoalProgress(ledger, month)
	d.Debts, d.TotalDebt = buildDebtProgress(ledger, month)
	d.Trend = buildTrend(ledger, month, d.TotalRevenueConfigured)

	return d
}

func buildNavigation(month datetime.Month, now datetime.Date) model.MonthNavigation {
	current := now.Month()
	return model.MonthNavigation{
		Current:        month,
		Previous:       month.Prev(),
		Next:           month.Next(),
		IsCurrentMonth: month == current,
		IsPastMonth:    month.Before(current),
		IsFutureMonth:  month.After(current),
	}
}

func monthExpenses(ledger *model.Ledger, month datetime.Month) []model.Expense {
	out := make([]model.Expense, 0)
	for _, e := range ledger.Expenses {
		if month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}

func buildCategorySummaries(ledger *model.Ledger, monthExpenses []model.Expense) ([]model.CategorySummary, decimal.Decimal) {
	spent := make(map[string]decimal.Decimal)
	for _, e := range monthExpenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}

	totalBudget := decimal.Zero
	summaries := make([]model.CategorySummary, 0, len(ledger.Categories))
	for _, c := range ledger.Categories {
		totalBudget = totalBudget.Add(c.Budget)

		s := model.CategorySummary{
			Name:   c.Name,
			Color:  c.Color,
			Budget: c.Budget,
			Spent:  spent[c.Name],
			Status: model.BudgetGood,
		}
		if !c.Budget.IsZero() {
			s.Percentage = s.Spent.Div(c.Budget).Mul(oneHundred).InexactFloat64()
		}
		switch {
		case s.Percentage > 100:
			s.Status = model.BudgetOver
		case s.Percentage > 80:
			s.Status = model.BudgetWarning
		}
		summaries = append(summaries, s)
	}
	return summaries, totalBudget
}

func buildPieChart(summaries []model.CategorySummary) []model.PieSlice {
	slices := make([]model.PieSlice, 0)
	for _, s := range summaries {
		if s.Spent.IsPositive() {
			slices = append(slices, model.PieSlice{Name: s.Name, Value: s.Spent, Color: s.Color})
		}
	}
	return slices
}

// configuredRevenue is the flat sum of active income sources. When no
// sources are configured the settings-level monthly income stands in.
func configuredRevenue(ledger *model.Ledger) decimal.Decimal {
	total := decimal.Zero
	any := false
	for _, r := range ledger.Revenues {
		if r.Active {
			total = total.Add(r.Amount)
			any = true
		}
	}
	if !any {
		return ledger.Settings.MonthlyIncome
	}
	return total
}

func realizedRevenue(ledger *model.Ledger, month datetime.Month) decimal.Decimal {
	total := decimal.Zero
	for _, r := range ledger.Revenues {
		for _, txn := range r.Transactions {
			if month.Contains(txn.Date) {
				total = total.Add(txn.Amount)
			}
		}
	}
	return total
}

func savingsRate(revenue, spent decimal.Decimal) float64 {
	if !revenue.IsPositive() {
		return 0
	}
	return revenue.Sub(spent).Div(revenue).Mul(oneHundred).InexactFloat64()
}

// buildGoalProgress computes per-goal month and cumulative savings. Both are
// signed sums (deposits minus withdrawals) floored at zero; the month window
// is the calendar month, the cumulative window everything up to its end.
func buildGoalProgress(ledger *model.Ledger, month datetime.Month) ([]model.GoalProgress, decimal.Decimal) {
	progress := make([]model.GoalProgress, 0, len(ledger.SavingsGoals))
	totalSavings := decimal.Zero

	for _, g := range ledger.SavingsGoals {
		monthAmount := decimal.Zero
		cumulative := decimal.Zero
		for _, txn := range g.Transactions {
			signed := txn.Amount
			if txn.Type == model.SavingsRemove {
				signed = signed.Neg()
			}
			if month.Contains(txn.Date) {
				monthAmount = monthAmount.Add(signed)
			}
			if month.ContainsOrBefore(txn.Date) {
				cumulative = cumulative.Add(signed)
			}
		}
		if monthAmount.IsNegative() {
			monthAmount = decimal.Zero
		}
		if cumulative.IsNegative() {
			cumulative = decimal.Zero
		}

		p := model.GoalProgress{
			ID:               g.ID,
			Name:             g.Name,
			Color:            g.Color,
			TargetAmount:     g.TargetAmount,
			MonthAmount:      monthAmount,
			CumulativeAmount: cumulative,
		}
		if !g.TargetAmount.IsZero() {
			p.MonthProgress = monthAmount.Div(g.TargetAmount).Mul(oneHundred).InexactFloat64()
			p.CumulativeProgress = cumulative.Div(g.TargetAmount).Mul(oneHundred).InexactFloat64()
		}
		progress = append(progress, p)
		totalSavings = totalSavings.Add(cumulative)
	}
	return progress, totalSavings
}

// buildDebtProgress computes per-debt payment standing. Month progress is
// measured against the minimum payment (a 200 payment on a 100 minimum is
// 200%); cumulative progress against the initial balance. When a debt
// predates its history the initial balance falls back to balance plus
// everything paid so far.
func buildDebtProgress(ledger *model.Ledger, month datetime.Month) ([]model.DebtProgress, decimal.Decimal) {
	progress := make([]model.DebtProgress, 0, len(ledger.Debts))
	totalDebt := decimal.Zero

	for _, debt := range ledger.Debts {
		monthAmount := decimal.Zero
		cumulative := decimal.Zero
		for _, p := range debt.PaymentHistory {
			if month.Contains(p.Date) {
				monthAmount = monthAmount.Add(p.Amount)
			}
			if month.ContainsOrBefore(p.Date) {
				cumulative = cumulative.Add(p.Amount)
			}
		}

		initial := debt.InitialBalance
		if initial.IsZero() {
			initial = debt.Balance.Add(cumulative)
		}
		remaining := initial.Sub(cumulative)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		p := model.DebtProgress{
			ID:               debt.ID,
			Name:             debt.Name,
			MinPayment:       debt.MinPayment,
			MonthAmount:      monthAmount,
			CumulativeAmount: cumulative,
			InitialBalance:   initial,
			RemainingBalance: remaining,
		}
		if !debt.MinPayment.IsZero() {
			p.MonthProgress = monthAmount.Div(debt.MinPayment).Mul(oneHundred).InexactFloat64()
		}
		if !initial.IsZero() {
			p.CumulativeProgress = cumulative.Div(initial).Mul(oneHundred).InexactFloat64()
		}
		progress = append(progress, p)
		totalDebt = totalDebt.Add(remaining)
	}
	return progress, totalDebt
}

// buildTrend covers the six months ending at the selected month. Income
// repeats the currently configured revenue for every point; revenue history
// is not reconstructed. Savings is income minus spending for the point's
// month, cumulative savings the goal total as of that month's end.
func buildTrend(ledger *model.Ledger, month datetime.Month, income decimal.Decimal) []model.TrendPoint {
	points := make([]model.TrendPoint, 0, trendMonths)
	start := month.AddMonths(-(trendMonths - 1))

	for i := 0; i < trendMonths; i++ {
		m := start.AddMonths(i)
		spent := decimal.Zero
		for _, e := range ledger.Expenses {
			if m.Contains(e.Date) {
				spent = spent.Add(e.Amount)
			}
		}
		points = append(points, model.TrendPoint{
			Month:             m,
			Label:             m.Label(),
			Spent:             spent,
			Income:            income,
			Savings:           income.Sub(spent),
			CumulativeSavings: totalSavingsAt(ledger, m),
		})
	}
	return points
}

// totalSavingsAt sums every goal's signed transactions up to the end of m,
// flooring each goal at zero, the same accumulation buildGoalProgress uses
// for the selected month.
func totalSavingsAt(ledger *model.Ledger, m datetime.Month) decimal.Decimal {
	total := decimal.Zero
	for _, g := range ledger.SavingsGoals {
		cumulative := decimal.Zero
		for _, txn := range g.Transactions {
			if !m.ContainsOrBefore(txn.Date) {
				continue
			}
			if txn.Type == model.SavingsRemove {
				cumulative = cumulative.Sub(txn.Amount)
			} else {
				cumulative = cumulative.Add(txn.Amount)
			}
		}
		if cumulative.IsPositive() {
			total = total.Add(cumulative)
		}
	}
	return total
}
