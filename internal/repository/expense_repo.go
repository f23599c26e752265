package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

// ExpenseRepository define el contrato de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense domain.Expense) error
	GetByID(ctx context.Context, id string) (domain.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type PgExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewPgExpenseRepository(pool *pgxpool.Pool) *PgExpenseRepository {
	return &PgExpenseRepository{pool: pool}
}

func (r *PgExpenseRepository) Create(ctx context.Context, expense domain.Expense) error {
	const query = `
		INSERT INTO expenses (id, user_id, amount, category, description, spent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.SpentAt,
		expense.CreatedAt,
	)
	return err
}

func (r *PgExpenseRepository) GetByID(ctx context.Context, id string) (domain.Expense, error) {
	const query = `
		SELECT id, user_id, amount, category, description, spent_at, created_at
		FROM expenses
		WHERE id = $1
	`
	var e domain.Expense
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.Category,
		&e.Description,
		&e.SpentAt,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Expense{}, err
	}
	return e, err
}

func (r *PgExpenseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	const query = `
		SELECT id, user_id, amount, category, description, spent_at, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY spent_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.Category,
			&e.Description,
			&e.SpentAt,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *PgExpenseRepository) Update(ctx context.Context, expense domain.Expense) error {
	const query = `
		UPDATE expenses
		SET amount = $1, category = $2, description = $3, spent_at = $4
		WHERE id = $5
	`
	_, err := r.pool.Exec(ctx, query,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.SpentAt,
		expense.ID,
	)
	return err
}

func (r *PgExpenseRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM expenses
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
