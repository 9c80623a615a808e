package api

import (
	"strconv"
	"strings"

	"artha/database"
	"artha/middleware"
	"artha/models"

	"github.com/gin-gonic/gin"
)

// GoalHandler serves savings goals.
type GoalHandler struct{}

// NewGoalHandler creates a goal handler.
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// CreateGoalRequest is the create payload.
type CreateGoalRequest struct {
	Name         string   `json:"name" binding:"required" example:"New Laptop"`
	TargetAmount *float64 `json:"target_amount" binding:"required,gte=0" example:"75000"`
	TargetDate   string   `json:"target_date" example:"2024-12-31"`
}

// UpdateGoalRequest is the partial update payload. IsCompleted is always
// recomputed from the amounts, never taken from the client.
type UpdateGoalRequest struct {
	Name          string   `json:"name"`
	TargetAmount  *float64 `json:"target_amount" binding:"omitempty,gte=0"`
	CurrentAmount *float64 `json:"current_amount" binding:"omitempty,gte=0"`
	TargetDate    string   `json:"target_date"`
}

// AddFundsRequest is the add-funds payload.
type AddFundsRequest struct {
	Amount *float64 `json:"amount" binding:"required" example:"500"`
}

// Create stores a new goal for the authenticated user.
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "goal payload"
// @Success 201 {object} models.Goal
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid goal data"))
		return
	}

	goal := models.Goal{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		TargetAmount: *req.TargetAmount,
	}
	if req.TargetDate != "" {
		parsed, err := parseDate(req.TargetDate)
		if err != nil {
			BadRequest(c, "Invalid target date, expected format: 2006-01-02")
			return
		}
		goal.TargetDate = &parsed
	}
	goal.Recompute()

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Created(c, goal)
}

// List returns the user's goals, newest first.
// @Summary List goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Goal
// @Failure 401 {object} ErrorResponse
// @Router /api/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, goals)
}

// Update applies a partial update after the ownership check and recomputes
// the completion flag.
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal ID"
// @Param request body UpdateGoalRequest true "fields to change"
// @Success 200 {object} models.Goal
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Goal not found")
		return
	}

	var goal models.Goal
	if err := database.DB.First(&goal, id).Error; err != nil {
		NotFound(c, "Goal not found")
		return
	}

	if goal.UserID != userID {
		Unauthorized(c, "Not authorized to update this goal")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid goal data"))
		return
	}

	if req.Name != "" {
		goal.Name = strings.TrimSpace(req.Name)
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != "" {
		parsed, err := parseDate(req.TargetDate)
		if err != nil {
			BadRequest(c, "Invalid target date, expected format: 2006-01-02")
			return
		}
		goal.TargetDate = &parsed
	}
	goal.Recompute()

	if err := database.DB.Save(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	OK(c, goal)
}

// AddFunds increments the saved amount and recomputes completion.
// @Summary Add funds to a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal ID"
// @Param request body AddFundsRequest true "amount to add"
// @Success 200 {object} models.Goal
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/add-funds/{id} [put]
func (h *GoalHandler) AddFunds(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Amount to add must be a positive number.")
		return
	}
	if *req.Amount <= 0 {
		BadRequest(c, "Amount to add must be a positive number.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Goal not found.")
		return
	}

	var goal models.Goal
	if err := database.DB.First(&goal, id).Error; err != nil {
		NotFound(c, "Goal not found.")
		return
	}

	if goal.UserID != userID {
		Unauthorized(c, "Not authorized to update this goal.")
		return
	}

	goal.CurrentAmount += *req.Amount
	goal.Recompute()

	if err := database.DB.Save(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error."))
		return
	}

	OK(c, goal)
}

// Delete removes a goal after the ownership check.
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Goal not found")
		return
	}

	var goal models.Goal
	if err := database.DB.First(&goal, id).Error; err != nil {
		NotFound(c, "Goal not found")
		return
	}

	if goal.UserID != userID {
		Unauthorized(c, "Not authorized to delete this goal")
		return
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return
	}

	Message(c, "Goal removed")
}
