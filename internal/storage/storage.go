// Package storage is the persistence gateway consumed by the services. Each
// entity gets a narrow repository interface keyed by user id; the GORM
// implementation lives in gorm.go.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/models"
	"finance/internal/pagination"
)

var (
	// ErrNotFound is returned by Find* lookups that match no row.
	ErrNotFound = errors.New("storage: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("storage: duplicate key")
)

// TransactionQuery narrows a transaction listing. Nil fields do not filter.
// Dates are inclusive calendar days.
type TransactionQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	Page       *pagination.PageRequest
}

// UserRepository persists users.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, user *models.User) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]models.Category, error)
	FindByNameAndUserID(ctx context.Context, name, userID string) (*models.Category, error)
	ExistsByNameAndUserID(ctx context.Context, name, userID string) (bool, error)
	ExistsByIDAndIsCustom(ctx context.Context, id string, isCustom bool) (bool, error)
	Save(ctx context.Context, category *models.Category) error
	SaveAll(ctx context.Context, categories []models.Category) error
	Delete(ctx context.Context, category *models.Category) error
}

// TransactionRepository persists transactions and answers the aggregation
// queries used by goals and reports.
type TransactionRepository interface {
	FindByUserIDOrderByDateDesc(ctx context.Context, userID string) ([]models.Transaction, error)
	FindByFilters(ctx context.Context, userID string, q TransactionQuery) ([]models.Transaction, error)
	CountByFilters(ctx context.Context, userID string, q TransactionQuery) (int64, error)
	FindByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Transaction, error)
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	ExistsByCategoryID(ctx context.Context, categoryID string) (bool, error)
	// SumAmountByTypeAndDateRange returns zero when nothing matches.
	SumAmountByTypeAndDateRange(ctx context.Context, userID string, txType models.CategoryType, start, end time.Time) (decimal.Decimal, error)
	Save(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, txn *models.Transaction) error
}

// SavingsGoalRepository persists savings goals.
type SavingsGoalRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]models.SavingsGoal, error)
	FindByID(ctx context.Context, id string) (*models.SavingsGoal, error)
	Save(ctx context.Context, goal *models.SavingsGoal) error
	DeleteByID(ctx context.Context, id string) error
}

// AuditLogRepository appends audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Gateway groups the repositories. InTransaction runs fn against a Gateway
// bound to a single database transaction; returning an error rolls it back.
type Gateway interface {
	Users() UserRepository
	Categories() CategoryRepository
	Transactions() TransactionRepository
	SavingsGoals() SavingsGoalRepository
	AuditLogs() AuditLogRepository
	InTransaction(ctx context.Context, fn func(Gateway) error) error
}
