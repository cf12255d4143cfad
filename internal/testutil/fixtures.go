package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finance/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Clock returns a clock function frozen at now.
func Clock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d@test.com", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:    username,
		Password:    string(hash),
		FullName:    "Test User",
		PhoneNumber: "+10000000000",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a custom category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestNamedCategory(t, db, userID, fmt.Sprintf("Test Category %d", nextID()), categoryType, true)
}

// CreateTestNamedCategory creates a category with full control over its fields.
func CreateTestNamedCategory(t *testing.T, db *gorm.DB, userID, name string, categoryType models.CategoryType, isCustom bool) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     categoryType,
		IsCustom: isCustom,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction bound to category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, category *models.Category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		UserID:      userID,
		Amount:      decimal.RequireFromString(amount),
		Date:        models.DateOf(date),
		Description: "test transaction",
	}
	txn.BindCategory(category)
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestSavingsGoal creates a goal running from start to target.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB, userID, targetAmount string, start, target time.Time) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:       userID,
		GoalName:     fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: decimal.RequireFromString(targetAmount),
		StartDate:    models.DateOf(start),
		TargetDate:   models.DateOf(target),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}
