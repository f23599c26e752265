package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

// ScholarshipRepository es de solo lectura: el catalogo se siembra por migraciones.
type ScholarshipRepository interface {
	List(ctx context.Context) ([]domain.Scholarship, error)
	GetByID(ctx context.Context, id string) (domain.Scholarship, error)
}

type PgScholarshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgScholarshipRepository(pool *pgxpool.Pool) *PgScholarshipRepository {
	return &PgScholarshipRepository{pool: pool}
}

func (r *PgScholarshipRepository) List(ctx context.Context) ([]domain.Scholarship, error) {
	const query = `
		SELECT id, title, organization, amount, min_gpa, applied_count, deadline, description, url, created_at
		FROM scholarships
		ORDER BY deadline ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scholarships []domain.Scholarship
	for rows.Next() {
		var s domain.Scholarship
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Organization,
			&s.Amount,
			&s.MinGPA,
			&s.AppliedCount,
			&s.Deadline,
			&s.Description,
			&s.URL,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		scholarships = append(scholarships, s)
	}
	return scholarships, rows.Err()
}

func (r *PgScholarshipRepository) GetByID(ctx context.Context, id string) (domain.Scholarship, error) {
	const query = `
		SELECT id, title, organization, amount, min_gpa, applied_count, deadline, description, url, created_at
		FROM scholarships
		WHERE id = $1
	`
	var s domain.Scholarship
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Title,
		&s.Organization,
		&s.Amount,
		&s.MinGPA,
		&s.AppliedCount,
		&s.Deadline,
		&s.Description,
		&s.URL,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Scholarship{}, err
	}
	return s, err
}
