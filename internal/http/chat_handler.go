package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
)

// ChatHandler mantiene dependencias para endpoints de chat 1-a-1.
type ChatHandler struct {
	logger *zap.Logger
	chats  repository.ChatRepository
	users  repository.UserRepository
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chats repository.ChatRepository, users repository.UserRepository) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		chats:  chats,
		users:  users,
	}
}

// StartConversation maneja POST /chat/conversations.
// Si el par ya tiene un hilo, devuelve el existente.
func (h *ChatHandler) StartConversation(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req struct {
		PeerEmail string `json:"peer_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	peer, err := h.users.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.PeerEmail)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get peer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if peer.ID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot chat with yourself"})
		return
	}

	existing, err := h.chats.GetConversationByPair(c.Request.Context(), user.ID, peer.ID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"conversation": existing})
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("get conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	conversation := domain.Conversation{
		ID:        uuid.NewString(),
		UserAID:   user.ID,
		UserBID:   peer.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.chats.CreateConversation(c.Request.Context(), conversation); err != nil {
		h.logger.Error("create conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": conversation})
}

// ListConversations maneja GET /chat/conversations.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	user, _ := CurrentUser(c)

	conversations, err := h.chats.ListConversationsByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list conversations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// PostMessage maneja POST /chat/conversations/:id/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conversation, ok := h.participantConversation(c, user.ID)
	if !ok {
		return
	}

	message := domain.ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       user.ID,
		Body:           req.Body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.chats.CreateMessage(c.Request.Context(), message); err != nil {
		h.logger.Error("create message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// ListMessages maneja GET /chat/conversations/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, _ := CurrentUser(c)

	conversation, ok := h.participantConversation(c, user.ID)
	if !ok {
		return
	}

	messages, err := h.chats.ListMessages(c.Request.Context(), conversation.ID)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// participantConversation responde 404 si el hilo no existe o el usuario no participa.
func (h *ChatHandler) participantConversation(c *gin.Context, userID string) (domain.Conversation, bool) {
	conversation, err := h.chats.GetConversationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return domain.Conversation{}, false
		}
		h.logger.Error("get conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return domain.Conversation{}, false
	}
	if !conversation.HasParticipant(userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return domain.Conversation{}, false
	}
	return conversation, true
}
