package api

import (
	"errors"
	"strconv"
	"strings"

	"artha/database"
	"artha/middleware"
	"artha/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves monthly category budgets.
type BudgetHandler struct{}

// NewBudgetHandler creates a budget handler.
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// CreateBudgetRequest is the create payload.
type CreateBudgetRequest struct {
	Category string   `json:"category" binding:"required" example:"Food & Dining"`
	Amount   *float64 `json:"amount" binding:"required,gte=0" example:"200"`
	Month    int      `json:"month" binding:"required,min=1,max=12" example:"6"`
	Year     int      `json:"year" binding:"required" example:"2024"`
}

// UpdateBudgetRequest is the partial update payload.
type UpdateBudgetRequest struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount" binding:"omitempty,gte=0"`
	Month    *int     `json:"month" binding:"omitempty,min=1,max=12"`
	Year     *int     `json:"year"`
}

const budgetConflictMessage = "A budget for this category and month/year already exists."

// Create stores a new budget. The handler pre-checks for a duplicate
// (owner, category, month, year) to answer with a descriptive conflict; the
// store's unique index remains authoritative under concurrent requests.
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "budget payload"
// @Success 201 {object} models.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid budget data"))
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		BadRequest(c, "Category must not be empty")
		return
	}

	var existing models.Budget
	if err := database.DB.Where("user_id = ? AND category_key = ? AND month = ? AND year = ?",
		userID, strings.ToLower(category), req.Month, req.Year).First(&existing).Error; err == nil {
		BadRequest(c, "Budget for this category and month/year already exists.")
		return
	}

	budget := models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   *req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		// A racing identical request can beat the pre-check; the unique
		// index reports it as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, budgetConflictMessage)
			return
		}
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Created(c, budget)
}

// List returns the user's budgets sorted by year, month and category,
// optionally filtered to an exact month and/or year.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param month query int false "month (1-12)"
// @Param year query int false "year"
// @Success 200 {array} models.Budget
// @Failure 401 {object} ErrorResponse
// @Router /api/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			BadRequest(c, "Invalid month")
			return
		}
		query = query.Where("month = ?", month)
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			BadRequest(c, "Invalid year")
			return
		}
		query = query.Where("year = ?", year)
	}

	var budgets []models.Budget
	if err := query.Order("year ASC, month ASC, category ASC").Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, budgets)
}

// Update applies a partial update after the ownership check. Changing the
// category, month or year re-checks uniqueness through the store index.
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget ID"
// @Param request body UpdateBudgetRequest true "fields to change"
// @Success 200 {object} models.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Budget not found")
		return
	}

	var budget models.Budget
	if err := database.DB.First(&budget, id).Error; err != nil {
		NotFound(c, "Budget not found")
		return
	}

	if budget.UserID != userID {
		Unauthorized(c, "Not authorized to update this budget")
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid budget data"))
		return
	}

	if req.Category != "" {
		budget.Category = strings.TrimSpace(req.Category)
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Month != nil {
		budget.Month = *req.Month
	}
	if req.Year != nil {
		budget.Year = *req.Year
	}

	if err := database.DB.Save(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, budgetConflictMessage)
			return
		}
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, budget)
}

// Delete removes a budget after the ownership check.
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Budget not found")
		return
	}

	var budget models.Budget
	if err := database.DB.First(&budget, id).Error; err != nil {
		NotFound(c, "Budget not found")
		return
	}

	if budget.UserID != userID {
		Unauthorized(c, "Not authorized to delete this budget")
		return
	}

	if err := database.DB.Delete(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Message(c, "Budget removed")
}
