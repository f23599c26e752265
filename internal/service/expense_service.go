package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
)

var (
	ErrInvalidExpense = errors.New("invalid expense")
	// ErrExpenseNotFound cubre tambien filas de otro usuario, para no filtrar existencia.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseService coordina gastos y resumenes de presupuesto.
type ExpenseService struct {
	logger   *zap.Logger
	expenses repository.ExpenseRepository
	now      func() time.Time
}

func NewExpenseService(logger *zap.Logger, expenses repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		logger:   logger,
		expenses: expenses,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type ExpenseInput struct {
	Amount      float64
	Category    string
	Description string
	SpentAt     time.Time
}

func (s *ExpenseService) Create(ctx context.Context, userID string, input ExpenseInput) (domain.Expense, error) {
	if s.expenses == nil {
		return domain.Expense{}, errors.New("expense service not configured")
	}

	category := strings.TrimSpace(input.Category)
	if input.Amount <= 0 || category == "" {
		return domain.Expense{}, ErrInvalidExpense
	}
	spentAt := input.SpentAt
	if spentAt.IsZero() {
		spentAt = s.now()
	}

	expense := domain.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      input.Amount,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		SpentAt:     spentAt,
		CreatedAt:   s.now(),
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, userID string) ([]domain.Expense, error) {
	if s.expenses == nil {
		return nil, errors.New("expense service not configured")
	}
	return s.expenses.ListByUser(ctx, userID)
}

func (s *ExpenseService) Update(ctx context.Context, userID, id string, input ExpenseInput) (domain.Expense, error) {
	if s.expenses == nil {
		return domain.Expense{}, errors.New("expense service not configured")
	}

	category := strings.TrimSpace(input.Category)
	if input.Amount <= 0 || category == "" {
		return domain.Expense{}, ErrInvalidExpense
	}

	expense, err := s.ownedExpense(ctx, userID, id)
	if err != nil {
		return domain.Expense{}, err
	}

	expense.Amount = input.Amount
	expense.Category = category
	expense.Description = strings.TrimSpace(input.Description)
	if !input.SpentAt.IsZero() {
		expense.SpentAt = input.SpentAt
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if s.expenses == nil {
		return errors.New("expense service not configured")
	}
	if _, err := s.ownedExpense(ctx, userID, id); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id)
}

// Summary calcula total global, total del mes corriente y totales por categoria.
func (s *ExpenseService) Summary(ctx context.Context, userID string) (domain.ExpenseSummary, error) {
	if s.expenses == nil {
		return domain.ExpenseSummary{}, errors.New("expense service not configured")
	}

	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return domain.ExpenseSummary{}, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary := domain.ExpenseSummary{ByCategory: make(map[string]float64)}
	for _, e := range expenses {
		summary.Total += e.Amount
		summary.ByCategory[e.Category] += e.Amount
		if !e.SpentAt.Before(monthStart) {
			summary.MonthTotal += e.Amount
		}
	}
	return summary, nil
}

func (s *ExpenseService) ownedExpense(ctx context.Context, userID, id string) (domain.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, ErrExpenseNotFound
		}
		return domain.Expense{}, err
	}
	if expense.UserID != userID {
		return domain.Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}
