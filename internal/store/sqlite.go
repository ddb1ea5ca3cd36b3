package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/pkg/currency"
	"github.com/mehdi559/poe/pkg/datetime"
)

// SQLiteStore persists the ledger in structured tables. Save replaces the
// whole snapshot inside one transaction; with a single writer that is
// simpler and just as safe as row-level diffing.
type SQLiteStore struct {
	db *sqlx.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	budget TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS expenses (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	amount TEXT NOT NULL,
	linked_debt_id TEXT
);
CREATE TABLE IF NOT EXISTS recurring_expenses (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	amount TEXT NOT NULL,
	day_of_month INTEGER NOT NULL,
	active INTEGER NOT NULL,
	last_processed TEXT,
	linked_debt_id TEXT
);
CREATE TABLE IF NOT EXISTS debts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	initial_balance TEXT NOT NULL,
	balance TEXT NOT NULL,
	min_payment TEXT NOT NULL,
	rate TEXT NOT NULL,
	auto_debit INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS debt_payments (
	id TEXT PRIMARY KEY,
	debt_id TEXT NOT NULL,
	date TEXT NOT NULL,
	amount TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS savings_goals (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	target_amount TEXT NOT NULL,
	current_amount TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS savings_transactions (
	id TEXT PRIMARY KEY,
	goal_id TEXT NOT NULL,
	date TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS revenues (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	frequency TEXT NOT NULL,
	day_of_month INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	start_date TEXT NOT NULL,
	active INTEGER NOT NULL,
	last_processed TEXT
);
CREATE TABLE IF NOT EXISTS revenue_transactions (
	id TEXT PRIMARY KEY,
	revenue_id TEXT NOT NULL,
	date TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_name TEXT NOT NULL,
	currency TEXT NOT NULL,
	monthly_income TEXT NOT NULL,
	initial_balance TEXT NOT NULL,
	selected_month TEXT NOT NULL,
	language TEXT NOT NULL,
	dark_mode INTEGER NOT NULL,
	show_balances INTEGER NOT NULL
);
`

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStoreWithDB wraps an existing connection. Used by tests.
func NewSQLiteStoreWithDB(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given ledger in one
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, ledger model.Ledger) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"categories", "expenses", "recurring_expenses", "debts",
		"debt_payments", "savings_goals", "savings_transactions",
		"revenues", "revenue_transactions", "settings",
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, c := range ledger.Categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, budget, color) VALUES (?, ?, ?, ?)`,
			c.ID.String(), c.Name, c.Budget.String(), c.Color)
		if err != nil {
			return fmt.Errorf("inserting category: %w", err)
		}
	}

	for _, e := range ledger.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, date, category, description, amount, linked_debt_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID.String(), e.Date.String(), e.Category, e.Description,
			e.Amount.String(), uuidPtrString(e.LinkedDebtID))
		if err != nil {
			return fmt.Errorf("inserting expense: %w", err)
		}
	}

	for _, r := range ledger.RecurringExpenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recurring_expenses
			 (id, description, category, amount, day_of_month, active, last_processed, linked_debt_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), r.Description, r.Category, r.Amount.String(),
			r.DayOfMonth, r.Active, datePtrString(r.LastProcessed),
			uuidPtrString(r.LinkedDebtID))
		if err != nil {
			return fmt.Errorf("inserting recurring expense: %w", err)
		}
	}

	for _, d := range ledger.Debts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO debts (id, name, initial_balance, balance, min_payment, rate, auto_debit)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID.String(), d.Name, d.InitialBalance.String(), d.Balance.String(),
			d.MinPayment.String(), d.Rate.String(), d.AutoDebit)
		if err != nil {
			return fmt.Errorf("inserting debt: %w", err)
		}
		for _, p := range d.PaymentHistory {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO debt_payments (id, debt_id, date, amount) VALUES (?, ?, ?, ?)`,
				p.ID.String(), d.ID.String(), p.Date.String(), p.Amount.String())
			if err != nil {
				return fmt.Errorf("inserting debt payment: %w", err)
			}
		}
	}

	for _, g := range ledger.SavingsGoals {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO savings_goals (id, name, target_amount, current_amount, color)
			 VALUES (?, ?, ?, ?, ?)`,
			g.ID.String(), g.Name, g.TargetAmount.String(), g.CurrentAmount.String(), g.Color)
		if err != nil {
			return fmt.Errorf("inserting savings goal: %w", err)
		}
		for _, txn := range g.Transactions {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO savings_transactions (id, goal_id, date, amount, type, description)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				txn.ID.String(), g.ID.String(), txn.Date.String(),
				txn.Amount.String(), string(txn.Type), txn.Description)
			if err != nil {
				return fmt.Errorf("inserting savings transaction: %w", err)
			}
		}
	}

	for _, r := range ledger.Revenues {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO revenues
			 (id, name, amount, type, frequency, day_of_month, description, start_date, active, last_processed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), r.Name, r.Amount.String(), string(r.Type),
			string(r.Frequency), r.DayOfMonth, r.Description,
			r.StartDate.String(), r.Active, datePtrString(r.LastProcessed))
		if err != nil {
			return fmt.Errorf("inserting revenue: %w", err)
		}
		for _, txn := range r.Transactions {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO revenue_transactions (id, revenue_id, date, amount, description)
				 VALUES (?, ?, ?, ?, ?)`,
				txn.ID.String(), r.ID.String(), txn.Date.String(),
				txn.Amount.String(), txn.Description)
			if err != nil {
				return fmt.Errorf("inserting revenue transaction: %w", err)
			}
		}
	}

	st := ledger.Settings
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings
		 (id, user_name, currency, monthly_income, initial_balance, selected_month, language, dark_mode, show_balances)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.UserName, string(st.Currency), st.MonthlyIncome.String(),
		st.InitialBalance.String(), st.SelectedMonth.String(),
		st.Language, st.DarkMode, st.ShowBalances)
	if err != nil {
		return fmt.Errorf("inserting settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load reassembles the ledger from the tables. An empty database (no
// settings row) returns (nil, nil) so the caller can seed the default state.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Ledger, error) {
	ledger := &model.Ledger{}

	var st settingsRow
	err := s.db.GetContext(ctx, &st, `SELECT * FROM settings WHERE id = 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	settings, err := st.toModel()
	if err != nil {
		return nil, err
	}
	ledger.Settings = settings

	var cats []categoryRow
	if err := s.db.SelectContext(ctx, &cats, `SELECT * FROM categories`); err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	for _, row := range cats {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		ledger.Categories = append(ledger.Categories, c)
	}

	var exps []expenseRow
	if err := s.db.SelectContext(ctx, &exps, `SELECT * FROM expenses ORDER BY date`); err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	for _, row := range exps {
		e, err := row.toModel()
		if err != nil {
			return nil, err
		}
		ledger.Expenses = append(ledger.Expenses, e)
	}

	var recs []recurringRow
	if err := s.db.SelectContext(ctx, &recs, `SELECT * FROM recurring_expenses`); err != nil {
		return nil, fmt.Errorf("loading recurring expenses: %w", err)
	}
	for _, row := range recs {
		r, err := row.toModel()
		if err != nil {
			return nil, err
		}
		ledger.RecurringExpenses = append(ledger.RecurringExpenses, r)
	}

	var debts []debtRow
	if err := s.db.SelectContext(ctx, &debts, `SELECT * FROM debts`); err != nil {
		return nil, fmt.Errorf("loading debts: %w", err)
	}
	var payments []debtPaymentRow
	if err := s.db.SelectContext(ctx, &payments, `SELECT * FROM debt_payments ORDER BY date`); err != nil {
		return nil, fmt.Errorf("loading debt payments: %w", err)
	}
	for _, row := range debts {
		d, err := row.toModel()
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			if p.DebtID == row.ID {
				payment, err := p.toModel()
				if err != nil {
					return nil, err
				}
				d.PaymentHistory = append(d.PaymentHistory, payment)
			}
		}
		ledger.Debts = append(ledger.Debts, d)
	}

	var goals []goalRow
	if err := s.db.SelectContext(ctx, &goals, `SELECT * FROM savings_goals`); err != nil {
		return nil, fmt.Errorf("loading savings goals: %w", err)
	}
	var savTxns []savingsTxnRow
	if err := s.db.SelectContext(ctx, &savTxns, `SELECT * FROM savings_transactions ORDER BY date`); err != nil {
		return nil, fmt.Errorf("loading savings transactions: %w", err)
	}
	for _, row := range goals {
		g, err := row.toModel()
		if err != nil {
			return nil, err
		}
		for _, txn := range savTxns {
			if txn.GoalID == row.ID {
				t, err := txn.toModel()
				if err != nil {
					return nil, err
				}
				g.Transactions = append(g.Transactions, t)
			}
		}
		ledger.SavingsGoals = append(ledger.SavingsGoals, g)
	}

	var revs []revenueRow
	if err := s.db.SelectContext(ctx, &revs, `SELECT * FROM revenues`); err != nil {
		return nil, fmt.Errorf("loading revenues: %w", err)
	}
	var revTxns []revenueTxnRow
	if err := s.db.SelectContext(ctx, &revTxns, `SELECT * FROM revenue_transactions ORDER BY date`); err != nil {
		return nil, fmt.Errorf("loading revenue transactions: %w", err)
	}
	for _, row := range revs {
		r, err := row.toModel()
		if err != nil {
			return nil, err
		}
		for _, txn := range revTxns {
			if txn.RevenueID == row.ID {
				t, err := txn.toModel()
				if err != nil {
					return nil, err
				}
				r.Transactions = append(r.Transactions, t)
			}
		}
		ledger.Revenues = append(ledger.Revenues, r)
	}

	return ledger, nil
}

// Row types. SQLite stores decimals and dates as TEXT; conversion to domain
// types happens here.

type categoryRow struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Budget string `db:"budget"`
	Color  string `db:"color"`
}

func (r categoryRow) toModel() (model.Category, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing category id: %w", err)
	}
	budget, err := decimal.NewFromString(r.Budget)
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing category budget: %w", err)
	}
	return model.Category{ID: id, Name: r.Name, Budget: budget, Color: r.Color}, nil
}

type expenseRow struct {
	ID           string         `db:"id"`
	Date         string         `db:"date"`
	Category     string         `db:"category"`
	Description  string         `db:"description"`
	Amount       string         `db:"amount"`
	LinkedDebtID sql.NullString `db:"linked_debt_id"`
}

func (r expenseRow) toModel() (model.Expense, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing expense id: %w", err)
	}
	date, err := datetime.ParseDate(r.Date)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing expense date: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing expense amount: %w", err)
	}
	linked, err := parseUUIDPtr(r.LinkedDebtID)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing expense debt link: %w", err)
	}
	return model.Expense{
		ID: id, Date: date, Category: r.Category,
		Description: r.Description, Amount: amount, LinkedDebtID: linked,
	}, nil
}

type recurringRow struct {
	ID            string         `db:"id"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	Amount        string         `db:"amount"`
	DayOfMonth    int            `db:"day_of_month"`
	Active        bool           `db:"active"`
	LastProcessed sql.NullString `db:"last_processed"`
	LinkedDebtID  sql.NullString `db:"linked_debt_id"`
}

func (r recurringRow) toModel() (model.RecurringExpense, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.RecurringExpense{}, fmt.Errorf("parsing recurring id: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.RecurringExpense{}, fmt.Errorf("parsing recurring amount: %w", err)
	}
	last, err := parseDatePtr(r.LastProcessed)
	if err != nil {
		return model.RecurringExpense{}, fmt.Errorf("parsing recurring stamp: %w", err)
	}
	linked, err := parseUUIDPtr(r.LinkedDebtID)
	if err != nil {
		return model.RecurringExpense{}, fmt.Errorf("parsing recurring debt link: %w", err)
	}
	return model.RecurringExpense{
		ID: id, Description: r.Description, Category: r.Category,
		Amount: amount, DayOfMonth: r.DayOfMonth, Active: r.Active,
		LastProcessed: last, LinkedDebtID: linked,
	}, nil
}

type debtRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	InitialBalance string `db:"initial_balance"`
	Balance        string `db:"balance"`
	MinPayment     string `db:"min_payment"`
	Rate           string `db:"rate"`
	AutoDebit      bool   `db:"auto_debit"`
}

func (r debtRow) toModel() (model.Debt, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Debt{}, fmt.Errorf("parsing debt id: %w", err)
	}
	initial, err := decimal.NewFromString(r.InitialBalance)
	if err != nil {
		return model.Debt{}, fmt.Errorf("parsing debt initial balance: %w", err)
	}
	balance, err := decimal.NewFromString(r.Balance)
	if err != nil {
		return model.Debt{}, fmt.Errorf("parsing debt balance: %w", err)
	}
	minPayment, err := decimal.NewFromString(r.MinPayment)
	if err != nil {
		return model.Debt{}, fmt.Errorf("parsing debt min payment: %w", err)
	}
	rate, err := decimal.NewFromString(r.Rate)
	if err != nil {
		return model.Debt{}, fmt.Errorf("parsing debt rate: %w", err)
	}
	return model.Debt{
		ID: id, Name: r.Name, InitialBalance: initial, Balance: balance,
		MinPayment: minPayment, Rate: rate, AutoDebit: r.AutoDebit,
	}, nil
}

type debtPaymentRow struct {
	ID     string `db:"id"`
	DebtID string `db:"debt_id"`
	Date   string `db:"date"`
	Amount string `db:"amount"`
}

func (r debtPaymentRow) toModel() (model.DebtPayment, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.DebtPayment{}, fmt.Errorf("parsing payment id: %w", err)
	}
	date, err := datetime.ParseDate(r.Date)
	if err != nil {
		return model.DebtPayment{}, fmt.Errorf("parsing payment date: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.DebtPayment{}, fmt.Errorf("parsing payment amount: %w", err)
	}
	return model.DebtPayment{ID: id, Date: date, Amount: amount}, nil
}

type goalRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	TargetAmount  string `db:"target_amount"`
	CurrentAmount string `db:"current_amount"`
	Color         string `db:"color"`
}

func (r goalRow) toModel() (model.SavingsGoal, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.SavingsGoal{}, fmt.Errorf("parsing goal id: %w", err)
	}
	target, err := decimal.NewFromString(r.TargetAmount)
	if err != nil {
		return model.SavingsGoal{}, fmt.Errorf("parsing goal target: %w", err)
	}
	current, err := decimal.NewFromString(r.CurrentAmount)
	if err != nil {
		return model.SavingsGoal{}, fmt.Errorf("parsing goal current amount: %w", err)
	}
	return model.SavingsGoal{
		ID: id, Name: r.Name, TargetAmount: target,
		CurrentAmount: current, Color: r.Color,
	}, nil
}

type savingsTxnRow struct {
	ID          string `db:"id"`
	GoalID      string `db:"goal_id"`
	Date        string `db:"date"`
	Amount      string `db:"amount"`
	Type        string `db:"type"`
	Description string `db:"description"`
}

func (r savingsTxnRow) toModel() (model.SavingsTransaction, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.SavingsTransaction{}, fmt.Errorf("parsing savings txn id: %w", err)
	}
	date, err := datetime.ParseDate(r.Date)
	if err != nil {
		return model.SavingsTransaction{}, fmt.Errorf("parsing savings txn date: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.SavingsTransaction{}, fmt.Errorf("parsing savings txn amount: %w", err)
	}
	return model.SavingsTransaction{
		ID: id, Date: date, Amount: amount,
		Type: model.SavingsTransactionType(r.Type), Description: r.Description,
	}, nil
}

type revenueRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Amount        string         `db:"amount"`
	Type          string         `db:"type"`
	Frequency     string         `db:"frequency"`
	DayOfMonth    int            `db:"day_of_month"`
	Description   string         `db:"description"`
	StartDate     string         `db:"start_date"`
	Active        bool           `db:"active"`
	LastProcessed sql.NullString `db:"last_processed"`
}

func (r revenueRow) toModel() (model.Revenue, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Revenue{}, fmt.Errorf("parsing revenue id: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.Revenue{}, fmt.Errorf("parsing revenue amount: %w", err)
	}
	start, err := datetime.ParseDate(r.StartDate)
	if err != nil {
		return model.Revenue{}, fmt.Errorf("parsing revenue start date: %w", err)
	}
	last, err := parseDatePtr(r.LastProcessed)
	if err != nil {
		return model.Revenue{}, fmt.Errorf("parsing revenue stamp: %w", err)
	}
	return model.Revenue{
		ID: id, Name: r.Name, Amount: amount,
		Type: model.RevenueType(r.Type), Frequency: model.RevenueFrequency(r.Frequency),
		DayOfMonth: r.DayOfMonth, Description: r.Description,
		StartDate: start, Active: r.Active, LastProcessed: last,
	}, nil
}

type revenueTxnRow struct {
	ID          string `db:"id"`
	RevenueID   string `db:"revenue_id"`
	Date        string `db:"date"`
	Amount      string `db:"amount"`
	Description string `db:"description"`
}

func (r revenueTxnRow) toModel() (model.RevenueTransaction, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.RevenueTransaction{}, fmt.Errorf("parsing revenue txn id: %w", err)
	}
	date, err := datetime.ParseDate(r.Date)
	if err != nil {
		return model.RevenueTransaction{}, fmt.Errorf("parsing revenue txn date: %w", err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.RevenueTransaction{}, fmt.Errorf("parsing revenue txn amount: %w", err)
	}
	return model.RevenueTransaction{ID: id, Date: date, Amount: amount, Description: r.Description}, nil
}

type settingsRow struct {
	ID             int    `db:"id"`
	UserName       string `db:"user_name"`
	Currency       string `db:"currency"`
	MonthlyIncome  string `db:"monthly_income"`
	InitialBalance string `db:"initial_balance"`
	SelectedMonth  string `db:"selected_month"`
	Language       string `db:"language"`
	DarkMode       bool   `db:"dark_mode"`
	ShowBalances   bool   `db:"show_balances"`
}

func (r settingsRow) toModel() (model.Settings, error) {
	income, err := decimal.NewFromString(r.MonthlyIncome)
	if err != nil {
		return model.Settings{}, fmt.Errorf("parsing monthly income: %w", err)
	}
	balance, err := decimal.NewFromString(r.InitialBalance)
	if err != nil {
		return model.Settings{}, fmt.Errorf("parsing initial balance: %w", err)
	}
	month, err := datetime.ParseMonth(r.SelectedMonth)
	if err != nil {
		return model.Settings{}, fmt.Errorf("parsing selected month: %w", err)
	}
	return model.Settings{
		UserName:       r.UserName,
		Currency:       currency.Currency(r.Currency),
		MonthlyIncome:  income,
		InitialBalance: balance,
		SelectedMonth:  month,
		Language:       r.Language,
		DarkMode:       r.DarkMode,
		ShowBalances:   r.ShowBalances,
	}, nil
}

func uuidPtrString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func datePtrString(d *datetime.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseUUIDPtr(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDatePtr(s sql.NullString) (*datetime.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := datetime.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
