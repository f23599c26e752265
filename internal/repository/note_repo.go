package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) error
	GetByID(ctx context.Context, id string) (domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Note, error)
	Update(ctx context.Context, note domain.Note) error
	Delete(ctx context.Context, id string) error
}

type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

func (r *PgNoteRepository) Create(ctx context.Context, note domain.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Tags,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

func (r *PgNoteRepository) GetByID(ctx context.Context, id string) (domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE id = $1
	`
	var n domain.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.Tags,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Note{}, err
	}
	return n, err
}

func (r *PgNoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Content,
			&n.Tags,
			&n.CreatedAt,
			&n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PgNoteRepository) Update(ctx context.Context, note domain.Note) error {
	const query = `
		UPDATE notes
		SET title = $1, content = $2, tags = $3, updated_at = $4
		WHERE id = $5
	`
	_, err := r.pool.Exec(ctx, query,
		note.Title,
		note.Content,
		note.Tags,
		note.UpdatedAt,
		note.ID,
	)
	return err
}

func (r *PgNoteRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM notes
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
