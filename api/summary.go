package api

import (
	"strconv"
	"time"

	"artha/database"
	"artha/middleware"
	"artha/models"
	"artha/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler serves the rule-based monthly financial summary.
type SummaryHandler struct{}

// NewSummaryHandler creates a summary handler.
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// SummaryResponse wraps the rendered summary paragraph.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// GetSummary aggregates one month of transactions and budgets into a
// deterministic natural-language paragraph. The two reads are independent;
// there is no cross-read consistency guarantee beyond the same request.
// @Summary Monthly financial summary
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param month query int true "month (1-12)"
// @Param year query int true "year"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ai/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		BadRequest(c, "Month and Year are required for summary.")
		return
	}

	month, errM := strconv.Atoi(monthStr)
	year, errY := strconv.Atoi(yearStr)
	if errM != nil || errY != nil || month < 1 || month > 12 {
		BadRequest(c, "Month and Year are required for summary.")
		return
	}

	start, end := monthRange(month, year)

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		InternalError(c, "Failed to generate summary. Please try again.")
		return
	}

	var budgets []models.Budget
	if err := database.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets).Error; err != nil {
		InternalError(c, "Failed to generate summary. Please try again.")
		return
	}

	OK(c, SummaryResponse{
		Summary: service.MonthlySummary(expenses, budgets, time.Month(month), year),
	})
}
