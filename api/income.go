package api

import (
	"strconv"
	"strings"
	"time"

	"artha/database"
	"artha/middleware"
	"artha/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler serves income entries.
type IncomeHandler struct{}

// NewIncomeHandler creates an income handler.
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// CreateIncomeRequest is the create payload. Date defaults to today.
type CreateIncomeRequest struct {
	Source string   `json:"source" binding:"required" example:"Salary"`
	Amount *float64 `json:"amount" binding:"required,gte=0" example:"50000"`
	Date   string   `json:"date" example:"2024-06-01"`
}

// UpdateIncomeRequest is the partial update payload.
type UpdateIncomeRequest struct {
	Source string   `json:"source"`
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
	Date   string   `json:"date"`
}

// Create records a new income entry for the authenticated user.
// @Summary Create an income entry
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "income payload"
// @Success 201 {object} models.Income
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid income data"))
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, "Invalid date, expected format: 2006-01-02")
			return
		}
		date = parsed
	}

	income := models.Income{
		UserID: userID,
		Source: strings.TrimSpace(req.Source),
		Amount: *req.Amount,
		Date:   date,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Created(c, income)
}

// List returns the user's income entries newest first, optionally filtered
// by month/year or by year alone.
// @Summary List income entries
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param month query int false "month (1-12), requires year"
// @Param year query int false "year"
// @Success 200 {array} models.Income
// @Failure 401 {object} ErrorResponse
// @Router /api/income [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr != "" && yearStr != "" {
		month, errM := strconv.Atoi(monthStr)
		year, errY := strconv.Atoi(yearStr)
		if errM != nil || errY != nil || month < 1 || month > 12 {
			BadRequest(c, "Invalid month or year")
			return
		}
		start, end := monthRange(month, year)
		query = query.Where("date >= ? AND date <= ?", start, end)
	} else if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			BadRequest(c, "Invalid year")
			return
		}
		start, end := yearRange(year)
		query = query.Where("date >= ? AND date <= ?", start, end)
	}

	var incomes []models.Income
	if err := query.Order("date DESC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, incomes)
}

// Update applies a partial update after the ownership check.
// @Summary Update an income entry
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "income ID"
// @Param request body UpdateIncomeRequest true "fields to change"
// @Success 200 {object} models.Income
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/income/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Income entry not found")
		return
	}

	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "Income entry not found")
		return
	}

	if income.UserID != userID {
		Unauthorized(c, "Not authorized to update this income entry")
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid income data"))
		return
	}

	if req.Source != "" {
		income.Source = strings.TrimSpace(req.Source)
	}
	if req.Amount != nil {
		income.Amount = *req.Amount
	}
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, "Invalid date, expected format: 2006-01-02")
			return
		}
		income.Date = parsed
	}

	if err := database.DB.Save(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, income)
}

// Delete removes an income entry after the ownership check.
// @Summary Delete an income entry
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param id path int true "income ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/income/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Income entry not found")
		return
	}

	var income models.Income
	if err := database.DB.First(&income, id).Error; err != nil {
		NotFound(c, "Income entry not found")
		return
	}

	if income.UserID != userID {
		Unauthorized(c, "Not authorized to delete this income entry")
		return
	}

	if err := database.DB.Delete(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Message(c, "Income entry removed")
}
