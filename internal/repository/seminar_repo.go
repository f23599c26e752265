package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

type SeminarRepository interface {
	Create(ctx context.Context, seminar domain.Seminar) error
	GetByID(ctx context.Context, id string) (domain.Seminar, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Seminar, error)
	Update(ctx context.Context, seminar domain.Seminar) error
	Delete(ctx context.Context, id string) error
}

type PgSeminarRepository struct {
	pool *pgxpool.Pool
}

func NewPgSeminarRepository(pool *pgxpool.Pool) *PgSeminarRepository {
	return &PgSeminarRepository{pool: pool}
}

func (r *PgSeminarRepository) Create(ctx context.Context, seminar domain.Seminar) error {
	const query = `
		INSERT INTO seminars (id, user_id, title, speaker, location, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		seminar.ID,
		seminar.UserID,
		seminar.Title,
		seminar.Speaker,
		seminar.Location,
		seminar.StartsAt,
		seminar.CreatedAt,
	)
	return err
}

func (r *PgSeminarRepository) GetByID(ctx context.Context, id string) (domain.Seminar, error) {
	const query = `
		SELECT id, user_id, title, speaker, location, starts_at, created_at
		FROM seminars
		WHERE id = $1
	`
	var s domain.Seminar
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.Title,
		&s.Speaker,
		&s.Location,
		&s.StartsAt,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Seminar{}, err
	}
	return s, err
}

func (r *PgSeminarRepository) ListByUser(ctx context.Context, userID string) ([]domain.Seminar, error) {
	const query = `
		SELECT id, user_id, title, speaker, location, starts_at, created_at
		FROM seminars
		WHERE user_id = $1
		ORDER BY starts_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seminars []domain.Seminar
	for rows.Next() {
		var s domain.Seminar
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Title,
			&s.Speaker,
			&s.Location,
			&s.StartsAt,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		seminars = append(seminars, s)
	}
	return seminars, rows.Err()
}

func (r *PgSeminarRepository) Update(ctx context.Context, seminar domain.Seminar) error {
	const query = `
		UPDATE seminars
		SET title = $1, speaker = $2, location = $3, starts_at = $4
		WHERE id = $5
	`
	_, err := r.pool.Exec(ctx, query,
		seminar.Title,
		seminar.Speaker,
		seminar.Location,
		seminar.StartsAt,
		seminar.ID,
	)
	return err
}

func (r *PgSeminarRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM seminars
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
