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

// EventHandler mantiene dependencias para endpoints del calendario.
type EventHandler struct {
	logger *zap.Logger
	events repository.EventRepository
}

func NewEventHandler(logger *zap.Logger, events repository.EventRepository) *EventHandler {
	return &EventHandler{
		logger: logger,
		events: events,
	}
}

type eventRequest struct {
	Title    string    `json:"title" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	AllDay   bool      `json:"all_day"`
}

// Create maneja POST /calendar/events.
func (h *EventHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.EndsAt.Before(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at before starts_at"})
		return
	}

	event := domain.CalendarEvent{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		AllDay:    req.AllDay,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.events.Create(c.Request.Context(), event); err != nil {
		h.logger.Error("create event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// List maneja GET /calendar/events. Acepta ?month=2026-09 como filtro.
func (h *EventHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)

	if month := c.Query("month"); month != "" {
		from, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		events, err := h.events.ListByUserBetween(c.Request.Context(), user.ID, from, from.AddDate(0, 1, 0))
		if err != nil {
			h.logger.Error("list events failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}

	events, err := h.events.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Update maneja PUT /calendar/events/:id.
func (h *EventHandler) Update(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.EndsAt.Before(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at before starts_at"})
		return
	}

	event, ok := h.ownedEvent(c, user.ID)
	if !ok {
		return
	}

	event.Title = req.Title
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.AllDay = req.AllDay

	if err := h.events.Update(c.Request.Context(), event); err != nil {
		h.logger.Error("update event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// Delete maneja DELETE /calendar/events/:id.
func (h *EventHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)

	if _, ok := h.ownedEvent(c, user.ID); !ok {
		return
	}

	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *EventHandler) ownedEvent(c *gin.Context, userID string) (domain.CalendarEvent, bool) {
	event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return domain.CalendarEvent{}, false
		}
		h.logger.Error("get event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return domain.CalendarEvent{}, false
	}
	if event.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return domain.CalendarEvent{}, false
	}
	return event, true
}
