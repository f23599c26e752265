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

// SeminarHandler mantiene dependencias para endpoints de seminarios.
type SeminarHandler struct {
	logger   *zap.Logger
	seminars repository.SeminarRepository
}

func NewSeminarHandler(logger *zap.Logger, seminars repository.SeminarRepository) *SeminarHandler {
	return &SeminarHandler{
		logger:   logger,
		seminars: seminars,
	}
}

// Create maneja POST /seminars.
func (h *SeminarHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req struct {
		Title    string    `json:"title" binding:"required"`
		Speaker  string    `json:"speaker"`
		Location string    `json:"location"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create seminar request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	seminar := domain.Seminar{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		Speaker:   req.Speaker,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.seminars.Create(c.Request.Context(), seminar); err != nil {
		h.logger.Error("create seminar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"seminar": seminar})
}

// List maneja GET /seminars.
func (h *SeminarHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)

	seminars, err := h.seminars.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list seminars failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seminars": seminars})
}

// Update maneja PUT /seminars/:id.
func (h *SeminarHandler) Update(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req struct {
		Title    string    `json:"title" binding:"required"`
		Speaker  string    `json:"speaker"`
		Location string    `json:"location"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update seminar request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	seminar, ok := h.ownedSeminar(c, user.ID)
	if !ok {
		return
	}

	seminar.Title = req.Title
	seminar.Speaker = req.Speaker
	seminar.Location = req.Location
	seminar.StartsAt = req.StartsAt

	if err := h.seminars.Update(c.Request.Context(), seminar); err != nil {
		h.logger.Error("update seminar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"seminar": seminar})
}

// Delete maneja DELETE /seminars/:id.
func (h *SeminarHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)

	if _, ok := h.ownedSeminar(c, user.ID); !ok {
		return
	}

	if err := h.seminars.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete seminar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ownedSeminar responde 404 tanto para filas ajenas como inexistentes.
func (h *SeminarHandler) ownedSeminar(c *gin.Context, userID string) (domain.Seminar, bool) {
	seminar, err := h.seminars.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "seminar not found"})
			return domain.Seminar{}, false
		}
		h.logger.Error("get seminar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return domain.Seminar{}, false
	}
	if seminar.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "seminar not found"})
		return domain.Seminar{}, false
	}
	return seminar, true
}
