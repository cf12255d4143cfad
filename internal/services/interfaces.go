package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/models"
	"finance/internal/pagination"
)

// UserServicer defines the contract for registration and credential checks.
type UserServicer interface {
	CurrentUserResolver
	Register(ctx context.Context, username, password, fullName, phoneNumber string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CurrentUserResolver turns an authenticated principal into a user id.
type CurrentUserResolver interface {
	ResolveUserID(ctx context.Context, username string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(ctx context.Context, userID string) ([]CategoryResponse, error)
	CreateCustomCategory(ctx context.Context, userID, name string, categoryType models.CategoryType) (*CategoryResponse, error)
	DeleteCategoryByName(ctx context.Context, userID, name string) error
	ProvisionDefaultCategories(ctx context.Context, userID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	CategoryName *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, amount decimal.Decimal, date time.Time, categoryName, description string) (*TransactionResponse, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]TransactionResponse, error)
	ListTransactionsPage(ctx context.Context, userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[TransactionResponse], error)
	GetTransactionByID(ctx context.Context, userID, id string) (*TransactionResponse, error)
	UpdateTransaction(ctx context.Context, userID, id string, changes TransactionPatch) (*TransactionResponse, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// SavingsGoalServicer defines the contract for savings-goal business logic.
type SavingsGoalServicer interface {
	CreateGoal(ctx context.Context, userID, name string, targetAmount decimal.Decimal, targetDate time.Time, startDate *time.Time) (*SavingsGoalResponse, error)
	ListGoals(ctx context.Context, userID string) ([]SavingsGoalResponse, error)
	GetGoalByID(ctx context.Context, userID, id string) (*SavingsGoalResponse, error)
	UpdateGoal(ctx context.Context, userID, id string, changes SavingsGoalPatch) (*SavingsGoalResponse, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

// ReportServicer defines the contract for monthly and yearly reports.
type ReportServicer interface {
	MonthlyReport(ctx context.Context, userID string, year, month int) (*MonthlyReport, error)
	YearlyReport(ctx context.Context, userID string, year int) (*YearlyReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
