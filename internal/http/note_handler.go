package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
)

// NoteHandler mantiene dependencias para endpoints de notas.
type NoteHandler struct {
	logger *zap.Logger
	notes  repository.NoteRepository
}

func NewNoteHandler(logger *zap.Logger, notes repository.NoteRepository) *NoteHandler {
	return &NoteHandler{
		logger: logger,
		notes:  notes,
	}
}

type noteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Create maneja POST /notes.
func (h *NoteHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create note request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.notes.Create(c.Request.Context(), note); err != nil {
		h.logger.Error("create note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// List maneja GET /notes.
func (h *NoteHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)

	notes, err := h.notes.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// Get maneja GET /notes/:id.
func (h *NoteHandler) Get(c *gin.Context) {
	user, _ := CurrentUser(c)

	note, ok := h.ownedNote(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// Update maneja PUT /notes/:id.
func (h *NoteHandler) Update(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update note request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, ok := h.ownedNote(c, user.ID)
	if !ok {
		return
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Tags = req.Tags
	note.UpdatedAt = time.Now().UTC()

	if err := h.notes.Update(c.Request.Context(), note); err != nil {
		h.logger.Error("update note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// Delete maneja DELETE /notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)

	if _, ok := h.ownedNote(c, user.ID); !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *NoteHandler) ownedNote(c *gin.Context, userID string) (domain.Note, bool) {
	note, err := h.notes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return domain.Note{}, false
		}
		h.logger.Error("get note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return domain.Note{}, false
	}
	if note.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return domain.Note{}, false
	}
	return note, true
}
