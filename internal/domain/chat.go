package domain

import "time"

// Conversation es un hilo 1-a-1 entre dos usuarios.
type Conversation struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasParticipant indica si el usuario pertenece a la conversacion.
func (c Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.UserAID == userID || c.UserBID == userID)
}
