package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

type mockExpenseRepo struct {
	byID map[string]domain.Expense
}

func newMockExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{byID: make(map[string]domain.Expense)}
}

func (m *mockExpenseRepo) Create(_ context.Context, expense domain.Expense) error {
	m.byID[expense.ID] = expense
	return nil
}

func (m *mockExpenseRepo) GetByID(_ context.Context, id string) (domain.Expense, error) {
	expense, ok := m.byID[id]
	if !ok {
		return domain.Expense{}, pgx.ErrNoRows
	}
	return expense, nil
}

func (m *mockExpenseRepo) ListByUser(_ context.Context, userID string) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for _, e := range m.byID {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *mockExpenseRepo) Update(_ context.Context, expense domain.Expense) error {
	m.byID[expense.ID] = expense
	return nil
}

func (m *mockExpenseRepo) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func TestExpenseService_CreateValidation(t *testing.T) {
	svc := NewExpenseService(zap.NewNop(), newMockExpenseRepo())

	if _, err := svc.Create(context.Background(), "user-1", ExpenseInput{Amount: 0, Category: "food"}); !errors.Is(err, ErrInvalidExpense) {
		t.Fatalf("expected ErrInvalidExpense for zero amount, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", ExpenseInput{Amount: 10, Category: "  "}); !errors.Is(err, ErrInvalidExpense) {
		t.Fatalf("expected ErrInvalidExpense for blank category, got %v", err)
	}

	expense, err := svc.Create(context.Background(), "user-1", ExpenseInput{Amount: 12.5, Category: "food"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expense.UserID != "user-1" || expense.SpentAt.IsZero() {
		t.Fatalf("expected populated expense, got %+v", expense)
	}
}

func TestExpenseService_SummaryMath(t *testing.T) {
	repo := newMockExpenseRepo()
	svc := NewExpenseService(zap.NewNop(), repo)

	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	inputs := []ExpenseInput{
		{Amount: 12.5, Category: "food", SpentAt: now},
		{Amount: 7.5, Category: "food", SpentAt: now.AddDate(0, -1, 0)},
		{Amount: 30, Category: "rent", SpentAt: now},
	}
	for _, input := range inputs {
		if _, err := svc.Create(context.Background(), "user-1", input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Gastos de otro usuario no entran al resumen.
	if _, err := svc.Create(context.Background(), "user-2", ExpenseInput{Amount: 100, Category: "food", SpentAt: now}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := svc.Summary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 50 {
		t.Fatalf("expected total 50, got %v", summary.Total)
	}
	if summary.MonthTotal != 42.5 {
		t.Fatalf("expected month total 42.5, got %v", summary.MonthTotal)
	}
	if summary.ByCategory["food"] != 20 || summary.ByCategory["rent"] != 30 {
		t.Fatalf("unexpected category totals: %+v", summary.ByCategory)
	}
}

func TestExpenseService_OwnershipIsEnforced(t *testing.T) {
	repo := newMockExpenseRepo()
	svc := NewExpenseService(zap.NewNop(), repo)

	expense, err := svc.Create(context.Background(), "user-1", ExpenseInput{Amount: 10, Category: "food"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Otro usuario ve not-found, nunca la fila ajena.
	if _, err := svc.Update(context.Background(), "user-2", expense.ID, ExpenseInput{Amount: 99, Category: "food"}); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-2", expense.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", expense.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", expense.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound after delete, got %v", err)
	}
}
