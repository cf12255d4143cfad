package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/services"
)

// --- mock savings goal service ---

type mockGoalService struct {
	createGoalFn  func(userID, name string, targetAmount decimal.Decimal, targetDate time.Time, startDate *time.Time) (*services.SavingsGoalResponse, error)
	listGoalsFn   func(userID string) ([]services.SavingsGoalResponse, error)
	getGoalByIDFn func(userID, id string) (*services.SavingsGoalResponse, error)
	updateGoalFn  func(userID, id string, changes services.SavingsGoalPatch) (*services.SavingsGoalResponse, error)
	deleteGoalFn  func(userID, id string) error
}

func (m *mockGoalService) CreateGoal(_ context.Context, userID, name string, targetAmount decimal.Decimal, targetDate time.Time, startDate *time.Time) (*services.SavingsGoalResponse, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(userID, name, targetAmount, targetDate, startDate)
	}
	return &services.SavingsGoalResponse{}, nil
}

func (m *mockGoalService) ListGoals(_ context.Context, userID string) ([]services.SavingsGoalResponse, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn(userID)
	}
	return []services.SavingsGoalResponse{}, nil
}

func (m *mockGoalService) GetGoalByID(_ context.Context, userID, id string) (*services.SavingsGoalResponse, error) {
	if m.getGoalByIDFn != nil {
		return m.getGoalByIDFn(userID, id)
	}
	return &services.SavingsGoalResponse{}, nil
}

func (m *mockGoalService) UpdateGoal(_ context.Context, userID, id string, changes services.SavingsGoalPatch) (*services.SavingsGoalResponse, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(userID, id, changes)
	}
	return &services.SavingsGoalResponse{}, nil
}

func (m *mockGoalService) DeleteGoal(_ context.Context, userID, id string) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(userID, id)
	}
	return nil
}

var _ services.SavingsGoalServicer = (*mockGoalService)(nil)

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/goals", handler.CreateGoal)
	auth.GET("/goals", handler.GetGoals)
	auth.GET("/goals/:id", handler.GetGoal)
	auth.PUT("/goals/:id", handler.UpdateGoal)
	auth.DELETE("/goals/:id", handler.DeleteGoal)
	return r
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotStart *time.Time
		svc := &mockGoalService{
			createGoalFn: func(_ string, name string, target decimal.Decimal, targetDate time.Time, startDate *time.Time) (*services.SavingsGoalResponse, error) {
				gotStart = startDate
				return &services.SavingsGoalResponse{
					ID:                 otherID,
					GoalName:           name,
					TargetAmount:       target,
					TargetDate:         models.FormatDate(targetDate),
					StartDate:          models.FormatDate(*startDate),
					CurrentProgress:    decimal.NewFromInt(400),
					ProgressPercentage: 40,
					RemainingAmount:    decimal.NewFromInt(600),
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupGoalRouter(NewGoalHandler(svc, audit, testNow))

		rec := doRequest(r, "POST", "/goals",
			`{"goal_name":"Emergency Fund","target_amount":"1000","target_date":"2024-12-31","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStart == nil || models.FormatDate(*gotStart) != "2024-01-01" {
			t.Errorf("unexpected start date %v", gotStart)
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["progress_percentage"].(float64) != 40 || goal["remaining_amount"] != "600" {
			t.Errorf("unexpected goal: %v", goal)
		}
		if len(audit.actions) != 1 {
			t.Errorf("expected one audit entry, got %v", audit.actions)
		}
	})

	t.Run("omitted start date is passed as nil", func(t *testing.T) {
		called := false
		svc := &mockGoalService{
			createGoalFn: func(_ string, _ string, _ decimal.Decimal, _ time.Time, startDate *time.Time) (*services.SavingsGoalResponse, error) {
				called = true
				if startDate != nil {
					t.Errorf("expected nil start date, got %v", startDate)
				}
				return &services.SavingsGoalResponse{ID: otherID}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "POST", "/goals", `{"goal_name":"Car","target_amount":5000,"target_date":"2025-06-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called {
			t.Error("service was not called")
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"target_amount":"1000","target_date":"2024-12-31"}`},
		{"zero target", `{"goal_name":"Car","target_amount":"0","target_date":"2024-12-31"}`},
		{"negative target", `{"goal_name":"Car","target_amount":"-10","target_date":"2024-12-31"}`},
		{"target date today", `{"goal_name":"Car","target_amount":"10","target_date":"` + testToday + `"}`},
		{"target date in the past", `{"goal_name":"Car","target_amount":"10","target_date":"2023-12-31"}`},
		{"malformed start date", `{"goal_name":"Car","target_amount":"10","target_date":"2024-12-31","start_date":"soon"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupGoalRouter(NewGoalHandler(&mockGoalService{}, &mockAuditService{}, testNow))

			rec := doRequest(r, "POST", "/goals", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 400 when start is not before target", func(t *testing.T) {
		svc := &mockGoalService{
			createGoalFn: func(_ string, _ string, _ decimal.Decimal, _ time.Time, _ *time.Time) (*services.SavingsGoalResponse, error) {
				return nil, apperrors.ErrInvalidDateRange
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "POST", "/goals",
			`{"goal_name":"Car","target_amount":"10","target_date":"2024-12-31","start_date":"2025-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_RANGE")
	})
}

func TestGoalHandler_GetGoals(t *testing.T) {
	svc := &mockGoalService{
		listGoalsFn: func(_ string) ([]services.SavingsGoalResponse, error) {
			return []services.SavingsGoalResponse{{ID: otherID, GoalName: "Vacation"}}, nil
		},
	}
	r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

	rec := doRequest(r, "GET", "/goals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	goals := parseJSON(t, rec)["goals"].([]interface{})
	if len(goals) != 1 || goals[0].(map[string]interface{})["goal_name"] != "Vacation" {
		t.Errorf("unexpected goals: %v", goals)
	}
}

func TestGoalHandler_GetGoal(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockGoalService{
			getGoalByIDFn: func(_, _ string) (*services.SavingsGoalResponse, error) {
				return nil, apperrors.ErrGoalNotFound
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "GET", "/goals/"+otherID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})

	t.Run("returns 403 for another user's goal", func(t *testing.T) {
		svc := &mockGoalService{
			getGoalByIDFn: func(_, _ string) (*services.SavingsGoalResponse, error) {
				return nil, apperrors.ErrGoalForbidden
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "GET", "/goals/"+otherID, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	t.Run("converts the target date", func(t *testing.T) {
		var got services.SavingsGoalPatch
		svc := &mockGoalService{
			updateGoalFn: func(_, id string, changes services.SavingsGoalPatch) (*services.SavingsGoalResponse, error) {
				got = changes
				return &services.SavingsGoalResponse{ID: id}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "PUT", "/goals/"+otherID, `{"target_date":"2025-01-31"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		date, ok := got.TargetDate.Get()
		if !ok || models.FormatDate(date) != "2025-01-31" {
			t.Errorf("unexpected target date %v (set=%v)", date, ok)
		}
		if got.TargetAmount.Present() {
			t.Error("target_amount was omitted and should not be present")
		}
	})

	t.Run("returns 400 on past target date", func(t *testing.T) {
		svc := &mockGoalService{
			updateGoalFn: func(_, _ string, _ services.SavingsGoalPatch) (*services.SavingsGoalResponse, error) {
				t.Error("service should not be called")
				return nil, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "PUT", "/goals/"+otherID, `{"target_date":"2024-03-15"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("null target date is ignored", func(t *testing.T) {
		var got services.SavingsGoalPatch
		svc := &mockGoalService{
			updateGoalFn: func(_, id string, changes services.SavingsGoalPatch) (*services.SavingsGoalResponse, error) {
				got = changes
				return &services.SavingsGoalResponse{ID: id}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "PUT", "/goals/"+otherID, `{"target_date":null,"target_amount":"250"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.TargetDate.IsSet() {
			t.Error("null target date must not be forwarded as a value")
		}
		if amount, ok := got.TargetAmount.Get(); !ok || !amount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("unexpected target amount %v", amount)
		}
	})

	t.Run("returns 400 on invalid target amount", func(t *testing.T) {
		svc := &mockGoalService{
			updateGoalFn: func(_, _ string, _ services.SavingsGoalPatch) (*services.SavingsGoalResponse, error) {
				return nil, apperrors.ErrInvalidTarget
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}, testNow))

		rec := doRequest(r, "PUT", "/goals/"+otherID, `{"target_amount":"0"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TARGET_AMOUNT")
	})
}

func TestGoalHandler_DeleteGoal(t *testing.T) {
	audit := &mockAuditService{}
	r := setupGoalRouter(NewGoalHandler(&mockGoalService{}, audit, testNow))

	rec := doRequest(r, "DELETE", "/goals/"+otherID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["message"] != "Goal deleted successfully" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	if len(audit.actions) != 1 || audit.actions[0] != services.AuditActionDelete+":SAVINGS_GOAL" {
		t.Errorf("unexpected audit entries: %v", audit.actions)
	}
}
