package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

// InternshipRepository es de solo lectura, igual que el catalogo de becas.
type InternshipRepository interface {
	List(ctx context.Context) ([]domain.Internship, error)
	GetByID(ctx context.Context, id string) (domain.Internship, error)
}

type PgInternshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgInternshipRepository(pool *pgxpool.Pool) *PgInternshipRepository {
	return &PgInternshipRepository{pool: pool}
}

func (r *PgInternshipRepository) List(ctx context.Context) ([]domain.Internship, error) {
	const query = `
		SELECT id, title, company, location, stipend, remote, deadline, description, url, created_at
		FROM internships
		ORDER BY deadline ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var internships []domain.Internship
	for rows.Next() {
		var i domain.Internship
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Company,
			&i.Location,
			&i.Stipend,
			&i.Remote,
			&i.Deadline,
			&i.Description,
			&i.URL,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		internships = append(internships, i)
	}
	return internships, rows.Err()
}

func (r *PgInternshipRepository) GetByID(ctx context.Context, id string) (domain.Internship, error) {
	const query = `
		SELECT id, title, company, location, stipend, remote, deadline, description, url, created_at
		FROM internships
		WHERE id = $1
	`
	var i domain.Internship
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&i.ID,
		&i.Title,
		&i.Company,
		&i.Location,
		&i.Stipend,
		&i.Remote,
		&i.Deadline,
		&i.Description,
		&i.URL,
		&i.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Internship{}, err
	}
	return i, err
}
