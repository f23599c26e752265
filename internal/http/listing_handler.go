package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
)

// ListingHandler sirve los catalogos de becas y pasantias.
type ListingHandler struct {
	logger       *zap.Logger
	scholarships repository.ScholarshipRepository
	internships  repository.InternshipRepository
	estimator    service.AcceptanceEstimator
}

func NewListingHandler(
	logger *zap.Logger,
	scholarships repository.ScholarshipRepository,
	internships repository.InternshipRepository,
	estimator service.AcceptanceEstimator,
) *ListingHandler {
	return &ListingHandler{
		logger:       logger,
		scholarships: scholarships,
		internships:  internships,
		estimator:    estimator,
	}
}

// ListScholarships maneja GET /scholarships. Acepta ?q= como filtro de substring.
func (h *ListingHandler) ListScholarships(c *gin.Context) {
	scholarships, err := h.scholarships.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list scholarships failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := scholarships[:0]
		for _, s := range scholarships {
			if strings.Contains(strings.ToLower(s.Title), q) || strings.Contains(strings.ToLower(s.Organization), q) {
				filtered = append(filtered, s)
			}
		}
		scholarships = filtered
	}

	c.JSON(http.StatusOK, gin.H{"scholarships": scholarships})
}

// GetScholarship maneja GET /scholarships/:id.
func (h *ListingHandler) GetScholarship(c *gin.Context) {
	scholarship, err := h.scholarships.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
			return
		}
		h.logger.Error("get scholarship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scholarship": scholarship})
}

// EstimateScholarship maneja GET /scholarships/:id/estimate?gpa=3.4.
func (h *ListingHandler) EstimateScholarship(c *gin.Context) {
	gpa, err := strconv.ParseFloat(strings.TrimSpace(c.Query("gpa")), 64)
	if err != nil || gpa < 0 || gpa > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gpa"})
		return
	}

	scholarship, err := h.scholarships.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
			return
		}
		h.logger.Error("get scholarship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scholarship_id":  scholarship.ID,
		"gpa":             gpa,
		"acceptance_rate": h.estimator.Estimate(scholarship, gpa),
	})
}

// ListInternships maneja GET /internships. Acepta ?q= como filtro de substring.
func (h *ListingHandler) ListInternships(c *gin.Context) {
	internships, err := h.internships.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list internships failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := internships[:0]
		for _, i := range internships {
			if strings.Contains(strings.ToLower(i.Title), q) || strings.Contains(strings.ToLower(i.Company), q) {
				filtered = append(filtered, i)
			}
		}
		internships = filtered
	}

	c.JSON(http.StatusOK, gin.H{"internships": internships})
}

// GetInternship maneja GET /internships/:id.
func (h *ListingHandler) GetInternship(c *gin.Context) {
	internship, err := h.internships.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "internship not found"})
			return
		}
		h.logger.Error("get internship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"internship": internship})
}
