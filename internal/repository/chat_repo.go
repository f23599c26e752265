package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

// ChatRepository persiste conversaciones 1-a-1 y sus mensajes.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conversation domain.Conversation) error
	GetConversationByID(ctx context.Context, id string) (domain.Conversation, error)
	GetConversationByPair(ctx context.Context, userAID, userBID string) (domain.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, message domain.ChatMessage) error
	ListMessages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
}

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, conversation domain.Conversation) error {
	const query = `
		INSERT INTO conversations (id, user_a_id, user_b_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		conversation.ID,
		conversation.UserAID,
		conversation.UserBID,
		conversation.CreatedAt,
	)
	return err
}

func (r *PgChatRepository) GetConversationByID(ctx context.Context, id string) (domain.Conversation, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, created_at
		FROM conversations
		WHERE id = $1
	`
	var c domain.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserAID,
		&c.UserBID,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conversation{}, err
	}
	return c, err
}

// GetConversationByPair busca el hilo existente sin importar el orden del par.
func (r *PgChatRepository) GetConversationByPair(ctx context.Context, userAID, userBID string) (domain.Conversation, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, created_at
		FROM conversations
		WHERE (user_a_id = $1 AND user_b_id = $2) OR (user_a_id = $2 AND user_b_id = $1)
	`
	var c domain.Conversation
	err := r.pool.QueryRow(ctx, query, userAID, userBID).Scan(
		&c.ID,
		&c.UserAID,
		&c.UserBID,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conversation{}, err
	}
	return c, err
}

func (r *PgChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	const query = `
		SELECT id, user_a_id, user_b_id, created_at
		FROM conversations
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(
			&c.ID,
			&c.UserAID,
			&c.UserBID,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *PgChatRepository) CreateMessage(ctx context.Context, message domain.ChatMessage) error {
	const query = `
		INSERT INTO chat_messages (id, conversation_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Body,
		message.CreatedAt,
	)
	return err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	const query = `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.SenderID,
			&m.Body,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
