package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/models"
	"finance/internal/patch"
)

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	Name     string              `json:"name"`
	Type     models.CategoryType `json:"type"`
	IsCustom bool                `json:"is_custom"`
}

func newCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Type: c.Type, IsCustom: c.IsCustom}
}

// TransactionResponse is the public view of a transaction.
type TransactionResponse struct {
	ID           string              `json:"id"`
	Amount       decimal.Decimal     `json:"amount"`
	Date         string              `json:"date"`
	Description  string              `json:"description"`
	Type         models.CategoryType `json:"type"`
	CategoryName string              `json:"category_name"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Amount:       t.Amount,
		Date:         models.FormatDate(t.Date),
		Description:  t.Description,
		Type:         t.Type,
		CategoryName: t.CategoryName,
	}
}

// TransactionPatch carries the fields of a partial transaction update.
// The date is not part of it: a transaction's date never changes.
type TransactionPatch struct {
	Amount       patch.Field[decimal.Decimal]
	CategoryName patch.Field[string]
	Description  patch.Field[string]
}

// SavingsGoalResponse is the public view of a goal including its progress.
type SavingsGoalResponse struct {
	ID                 string          `json:"id"`
	GoalName           string          `json:"goal_name"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	TargetDate         string          `json:"target_date"`
	StartDate          string          `json:"start_date"`
	CurrentProgress    decimal.Decimal `json:"current_progress"`
	ProgressPercentage float64         `json:"progress_percentage"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
}

// SavingsGoalPatch carries the fields of a partial goal update.
type SavingsGoalPatch struct {
	TargetAmount patch.Field[decimal.Decimal]
	TargetDate   patch.Field[time.Time]
}

// MonthlyReport aggregates one calendar month.
type MonthlyReport struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Totals
}

// YearlyReport aggregates one calendar year.
type YearlyReport struct {
	Year int `json:"year"`
	Totals
}

// Totals is the aggregation shared by both report kinds.
type Totals struct {
	IncomeByCategory   map[string]decimal.Decimal `json:"income_by_category"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	TotalIncome        decimal.Decimal            `json:"total_income"`
	TotalExpenses      decimal.Decimal            `json:"total_expenses"`
	NetSavings         decimal.Decimal            `json:"net_savings"`
}
