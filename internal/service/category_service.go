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

// categoryStore is the slice of the store the category service needs.
type categoryStore interface {
	Snapshot() *model.Ledger
	AddCategory(c model.Category) error
	UpdateCategory(id uuid.UUID, name string, budget decimal.Decimal, color string) error
	DeleteCategory(id uuid.UUID) error
	SetBudget(id uuid.UUID, budget decimal.Decimal) error
	OptimizeBudgets(budgets map[uuid.UUID]decimal.Decimal) error
}

// CategoryService validates and applies category mutations.
type CategoryService struct {
	store    categoryStore
	notifier Notifier
}

func NewCategoryService(store categoryStore, notifier Notifier) *CategoryService {
	return &CategoryService{store: store, notifier: notifier}
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Color  string          `json:"color"`
}

func (in *CategoryInput) validate() error {
	in.Name = sanitizeText(in.Name)
	in.Budget = sanitizeAmount(in.Budget)

	errs := apperror.ValidationErrors{}
	checkRequired(errs, "name", in.Name)
	if in.Name != "" {
		checkLength(errs, "name", in.Name, minNameLen, maxNameLen)
	}
	checkNonNegative(errs, "budget", in.Budget)
	return errs.AsError()
}

// Create adds a new category.
// List returns every category in ledger order.
func (s *CategoryService) List() []model.Category {
	return s.store.Snapshot().Categories
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	cat := model.Category{
		ID:     uuid.New(),
		Name:   in.Name,
		Budget: in.Budget,
		Color:  in.Color,
	}
	if err := s.store.AddCategory(cat); err != nil {
		return nil, fmt.Errorf("adding category: %w", err)
	}

	s.notifier.Notify(ctx, "notification.category_added", map[string]string{"name": cat.Name})
	return &cat, nil
}

// Update renames a category and/or changes its budget. Renames cascade to
// the expense history inside the store.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := s.store.UpdateCategory(id, in.Name, in.Budget, in.Color); err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return nil
}

// Delete removes a category and its expenses.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	snap := s.store.Snapshot()
	var name string
	for _, c := range snap.Categories {
		if c.ID == id {
			name = c.Name
			break
		}
	}

	if err := s.store.DeleteCategory(id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	s.notifier.Notify(ctx, "notification.category_deleted", map[string]string{"name": name})
	return nil
}

// SetBudget updates one category's budget.
func (s *CategoryService) SetBudget(ctx context.Context, id uuid.UUID, budget decimal.Decimal) error {
	budget = sanitizeAmount(budget)

	errs := apperror.ValidationErrors{}
	checkNonNegative(errs, "budget", budget)
	if err := errs.AsError(); err != nil {
		return err
	}

	if err := s.store.SetBudget(id, budget); err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}
	return nil
}

// OptimizeBudgets recomputes every category's budget from its average
// monthly spend over the last three full months, rounded up to the nearest
// ten. Categories with no spending keep their current budget.
func (s *CategoryService) OptimizeBudgets(ctx context.Context, now datetime.Date) (map[string]decimal.Decimal, error) {
	snap := s.store.Snapshot()

	window := make([]datetime.Month, 0, 3)
	m := now.Month()
	for i := 0; i < 3; i++ {
		m = m.Prev()
		window = append(window, m)
	}

	spentByName := make(map[string]decimal.Decimal)
	for _, e := range snap.Expenses {
		for _, wm := range window {
			if wm.Contains(e.Date) {
				spentByName[e.Category] = spentByName[e.Category].Add(e.Amount)
				break
			}
		}
	}

	three := decimal.NewFromInt(3)
	ten := decimal.NewFromInt(10)
	budgets := make(map[uuid.UUID]decimal.Decimal)
	applied := make(map[string]decimal.Decimal)
	for _, c := range snap.Categories {
		total, ok := spentByName[c.Name]
		if !ok || total.IsZero() {
			continue
		}
		avg := total.Div(three)
		// round up to the nearest 10
		suggested := avg.Div(ten).Ceil().Mul(ten)
		budgets[c.ID] = suggested
		applied[c.Name] = suggested
	}

	if len(budgets) > 0 {
		if err := s.store.OptimizeBudgets(budgets); err != nil {
			return nil, fmt.Errorf("optimizing budgets: %w", err)
		}
	}

	s.notifier.Notify(ctx, "notification.budgets_optimized", map[string]string{
		"count": fmt.Sprintf("%d", len(budgets)),
	})
	return applied, nil
}
