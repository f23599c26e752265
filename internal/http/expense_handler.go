package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
)

// ExpenseHandler mantiene dependencias para endpoints de gastos.
type ExpenseHandler struct {
	logger      *zap.Logger
	expenseServ *service.ExpenseService
}

func NewExpenseHandler(logger *zap.Logger, expenseServ *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		logger:      logger,
		expenseServ: expenseServ,
	}
}

type expenseRequest struct {
	Amount      float64    `json:"amount" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Description string     `json:"description"`
	SpentAt     *time.Time `json:"spent_at"`
}

func (r expenseRequest) toInput() service.ExpenseInput {
	input := service.ExpenseInput{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.SpentAt != nil {
		input.SpentAt = *r.SpentAt
	}
	return input
}

// Create maneja POST /expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create expense request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	expense, err := h.expenseServ.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidExpense) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense"})
			return
		}
		h.logger.Error("create expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// List maneja GET /expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)

	expenses, err := h.expenseServ.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list expenses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// Update maneja PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update expense request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	expense, err := h.expenseServ.Update(c.Request.Context(), user.ID, c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		case errors.Is(err, service.ErrInvalidExpense):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense"})
			return
		default:
			h.logger.Error("update expense failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// Delete maneja DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)

	if err := h.expenseServ.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		h.logger.Error("delete expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Summary maneja GET /expenses/summary.
func (h *ExpenseHandler) Summary(c *gin.Context) {
	user, _ := CurrentUser(c)

	summary, err := h.expenseServ.Summary(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("expense summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
