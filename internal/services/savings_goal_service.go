package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/storage"
)

// savingsGoalService handles savings-goal business logic.
type savingsGoalService struct {
	gw  storage.Gateway
	now func() time.Time
}

// NewSavingsGoalService creates a new SavingsGoalServicer.
func NewSavingsGoalService(gw storage.Gateway, now func() time.Time) SavingsGoalServicer {
	return &savingsGoalService{gw: gw, now: now}
}

// CreateGoal creates a goal. A nil startDate means today.
func (s *savingsGoalService) CreateGoal(
	ctx context.Context,
	userID string,
	name string,
	targetAmount decimal.Decimal,
	targetDate time.Time,
	startDate *time.Time,
) (*SavingsGoalResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal name is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.ErrInvalidTarget
	}

	start := s.today()
	if startDate != nil {
		start = models.DateOf(*startDate)
	}
	target := models.DateOf(targetDate)
	if !start.Before(target) {
		return nil, apperrors.ErrInvalidDateRange
	}

	goal := &models.SavingsGoal{
		UserID:       userID,
		GoalName:     name,
		TargetAmount: targetAmount,
		TargetDate:   target,
		StartDate:    start,
	}

	var resp *SavingsGoalResponse
	err := s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		if err := tx.SavingsGoals().Save(ctx, goal); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		var err error
		resp, err = s.toResponse(ctx, tx, goal)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListGoals returns every goal of the user with its current progress.
func (s *savingsGoalService) ListGoals(ctx context.Context, userID string) ([]SavingsGoalResponse, error) {
	goals, err := s.gw.SavingsGoals().FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]SavingsGoalResponse, 0, len(goals))
	for i := range goals {
		resp, err := s.toResponse(ctx, s.gw, &goals[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetGoalByID returns a single goal owned by the user.
func (s *savingsGoalService) GetGoalByID(ctx context.Context, userID, id string) (*SavingsGoalResponse, error) {
	goal, err := findOwnedGoal(ctx, s.gw, userID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, s.gw, goal)
}

// UpdateGoal applies the fields present in changes.
func (s *savingsGoalService) UpdateGoal(ctx context.Context, userID, id string, changes SavingsGoalPatch) (*SavingsGoalResponse, error) {
	if amount, ok := changes.TargetAmount.Get(); ok && !amount.IsPositive() {
		return nil, apperrors.ErrInvalidTarget
	}

	var resp *SavingsGoalResponse
	err := s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		goal, err := findOwnedGoal(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if amount, ok := changes.TargetAmount.Get(); ok {
			goal.TargetAmount = amount
		}
		if date, ok := changes.TargetDate.Get(); ok {
			target := models.DateOf(date)
			if !goal.StartDate.Before(target) {
				return apperrors.ErrInvalidDateRange
			}
			goal.TargetDate = target
		}

		if err := tx.SavingsGoals().Save(ctx, goal); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		resp, err = s.toResponse(ctx, tx, goal)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteGoal removes a goal owned by the user.
func (s *savingsGoalService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		goal, err := findOwnedGoal(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.SavingsGoals().DeleteByID(ctx, goal.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *savingsGoalService) today() time.Time {
	return models.DateOf(s.now())
}

// toResponse derives progress from the owner's net cash flow between the
// goal's start date and today.
func (s *savingsGoalService) toResponse(ctx context.Context, gw storage.Gateway, goal *models.SavingsGoal) (*SavingsGoalResponse, error) {
	progress, err := netCashFlow(ctx, gw.Transactions(), goal.UserID, goal.StartDate, s.today())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &SavingsGoalResponse{
		ID:                 goal.ID,
		GoalName:           goal.GoalName,
		TargetAmount:       goal.TargetAmount,
		TargetDate:         models.FormatDate(goal.TargetDate),
		StartDate:          models.FormatDate(goal.StartDate),
		CurrentProgress:    progress,
		ProgressPercentage: progressPercentage(progress, goal.TargetAmount),
		RemainingAmount:    goal.TargetAmount.Sub(progress),
	}, nil
}

func findOwnedGoal(ctx context.Context, gw storage.Gateway, userID, id string) (*models.SavingsGoal, error) {
	goal, err := gw.SavingsGoals().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrGoalNotFound, "Savings goal not found with id: %s", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if goal.UserID != userID {
		return nil, apperrors.ErrGoalForbidden
	}
	return goal, nil
}
