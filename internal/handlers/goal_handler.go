package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/patch"
	"finance/internal/services"
)

// GoalHandler handles savings-goal requests.
type GoalHandler struct {
	goalService  services.SavingsGoalServicer
	auditService services.AuditServicer
	now          func() time.Time
}

// NewGoalHandler creates a new GoalHandler. now decides which calendar day
// counts as today when a new target date is checked; nil means time.Now.
func NewGoalHandler(goalService services.SavingsGoalServicer, auditService services.AuditServicer, now func() time.Time) *GoalHandler {
	if now == nil {
		now = time.Now
	}
	return &GoalHandler{goalService: goalService, auditService: auditService, now: now}
}

// CreateGoalRequest represents the request payload for creating a savings goal
type CreateGoalRequest struct {
	GoalName     string          `json:"goal_name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required,gt=0" swaggertype:"string" example:"5000.00"`
	TargetDate   string          `json:"target_date" binding:"required,iso_date,future_date" example:"2025-12-31"`
	StartDate    *string         `json:"start_date" binding:"omitempty,iso_date" example:"2024-01-01"`
}

// UpdateGoalRequest represents a partial update of a goal. Omitted and null
// fields are left unchanged.
type UpdateGoalRequest struct {
	TargetAmount patch.Field[decimal.Decimal] `json:"target_amount" swaggertype:"string"`
	TargetDate   patch.Field[string]          `json:"target_date" swaggertype:"string"`
}

// CreateGoal creates a savings goal
// @Summary     Create savings goal
// @Description Create a goal; progress is the net cash flow since its start date
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} services.SavingsGoalResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	targetDate, err := models.ParseDate(req.TargetDate)
	if err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	var startDate *time.Time
	if req.StartDate != nil {
		d, err := models.ParseDate(*req.StartDate)
		if err != nil {
			respondWithError(c, invalidInput(err))
			return
		}
		startDate = &d
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req.GoalName, req.TargetAmount, targetDate, startDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionCreate, "SAVINGS_GOAL", goal.ID, c.ClientIP(),
		map[string]any{"goal_name": goal.GoalName, "target_amount": goal.TargetAmount.String(), "target_date": goal.TargetDate})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists the user's goals with progress
// @Summary     List savings goals
// @Tags        goals
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} map[string][]services.SavingsGoalResponse "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoal returns a single goal with progress
// @Summary     Get savings goal
// @Tags        goals
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Goal ID"
// @Success     200 {object} services.SavingsGoalResponse "Goal"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal applies a partial update
// @Summary     Update savings goal
// @Description Change the target amount or target date. A new target date must be in the future.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to change"
// @Success     200 {object} services.SavingsGoalResponse "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	changes := services.SavingsGoalPatch{TargetAmount: req.TargetAmount}
	if raw, ok := req.TargetDate.Get(); ok {
		targetDate, err := h.parseFutureDate(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
		changes.TargetDate = patch.Set(targetDate)
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, id, changes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionUpdate, "SAVINGS_GOAL", goal.ID, c.ClientIP(),
		map[string]any{"target_amount": goal.TargetAmount.String(), "target_date": goal.TargetDate})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes a savings goal
// @Summary     Delete savings goal
// @Tags        goals
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionDelete, "SAVINGS_GOAL", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func (h *GoalHandler) parseFutureDate(raw string) (time.Time, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_date must be a date in YYYY-MM-DD format")
	}
	if !d.After(models.DateOf(h.now())) {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target date must be in the future")
	}
	return d, nil
}
