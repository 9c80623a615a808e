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

// ExpenseHandler serves transaction records. Amounts are signed: positive
// entries count as income, negative entries as spending.
type ExpenseHandler struct{}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest is the create payload. Date defaults to today.
type CreateExpenseRequest struct {
	Title    string   `json:"title" binding:"required" example:"Coffee"`
	Amount   *float64 `json:"amount" binding:"required" example:"-50"`
	Category string   `json:"category" example:"Food & Dining"`
	Date     string   `json:"date" example:"2024-06-15"`
}

// UpdateExpenseRequest is the partial update payload.
type UpdateExpenseRequest struct {
	Title    string   `json:"title"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
}

// Create records a new transaction for the authenticated user.
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense payload"
// @Success 201 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid expense data"))
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

	expense := models.Expense{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Amount:   *req.Amount,
		Category: strings.TrimSpace(req.Category),
		Date:     date,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Created(c, expense)
}

// List returns the user's transactions, newest date first, optionally
// restricted to a month/year.
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param month query int false "month (1-12), requires year"
// @Param year query int false "year"
// @Success 200 {array} models.Expense
// @Failure 401 {object} ErrorResponse
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
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

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, expenses)
}

// Update applies a partial update after the ownership check.
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense ID"
// @Param request body UpdateExpenseRequest true "fields to change"
// @Success 200 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Expense not found")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "Expense not found")
		return
	}

	if expense.UserID != userID {
		Unauthorized(c, "Not authorized to update this expense")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid expense data"))
		return
	}

	if req.Title != "" {
		expense.Title = strings.TrimSpace(req.Title)
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != "" {
		expense.Category = strings.TrimSpace(req.Category)
	}
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, "Invalid date, expected format: 2006-01-02")
			return
		}
		expense.Date = parsed
	}

	if err := database.DB.Save(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, expense)
}

// Delete removes a transaction after the ownership check.
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Expense not found")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "Expense not found")
		return
	}

	if expense.UserID != userID {
		Unauthorized(c, "Not authorized to delete this expense")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Message(c, "Expense removed")
}
