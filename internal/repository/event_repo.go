package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (domain.CalendarEvent, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CalendarEvent, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, event domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

type PgEventRepository struct {
	pool *pgxpool.Pool
}

func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

func (r *PgEventRepository) Create(ctx context.Context, event domain.CalendarEvent) error {
	const query = `
		INSERT INTO calendar_events (id, user_id, title, starts_at, ends_at, all_day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Title,
		event.StartsAt,
		event.EndsAt,
		event.AllDay,
		event.CreatedAt,
	)
	return err
}

func (r *PgEventRepository) GetByID(ctx context.Context, id string) (domain.CalendarEvent, error) {
	const query = `
		SELECT id, user_id, title, starts_at, ends_at, all_day, created_at
		FROM calendar_events
		WHERE id = $1
	`
	var e domain.CalendarEvent
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.StartsAt,
		&e.EndsAt,
		&e.AllDay,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CalendarEvent{}, err
	}
	return e, err
}

func (r *PgEventRepository) ListByUser(ctx context.Context, userID string) ([]domain.CalendarEvent, error) {
	const query = `
		SELECT id, user_id, title, starts_at, ends_at, all_day, created_at
		FROM calendar_events
		WHERE user_id = $1
		ORDER BY starts_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *PgEventRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	const query = `
		SELECT id, user_id, title, starts_at, ends_at, all_day, created_at
		FROM calendar_events
		WHERE user_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	for rows.Next() {
		var e domain.CalendarEvent
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Title,
			&e.StartsAt,
			&e.EndsAt,
			&e.AllDay,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PgEventRepository) Update(ctx context.Context, event domain.CalendarEvent) error {
	const query = `
		UPDATE calendar_events
		SET title = $1, starts_at = $2, ends_at = $3, all_day = $4
		WHERE id = $5
	`
	_, err := r.pool.Exec(ctx, query,
		event.Title,
		event.StartsAt,
		event.EndsAt,
		event.AllDay,
		event.ID,
	)
	return err
}

func (r *PgEventRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM calendar_events
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
