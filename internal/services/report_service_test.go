package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance/internal/models"
	"finance/internal/storage"
	"finance/internal/testutil"
)

func TestMonthlyReport(t *testing.T) {
	t.Run("freelance_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		txnSvc := NewTransactionService(storage.NewGormGateway(db), testutil.Clock(testNow))
		catSvc := NewCategoryService(storage.NewGormGateway(db))
		svc := NewReportService(storage.NewGormGateway(db))
		ctx := context.Background()

		_, err := catSvc.CreateCustomCategory(ctx, user.ID, "Freelance", models.CategoryTypeIncome)
		require.NoError(t, err)
		_, err = txnSvc.CreateTransaction(ctx, user.ID, decimal.RequireFromString("500.00"), testutil.Date(2024, time.January, 10), "Freelance", "")
		require.NoError(t, err)

		report, err := svc.MonthlyReport(ctx, user.ID, 2024, 1)
		testutil.AssertNoError(t, err)

		assert.Equal(t, 1, report.Month)
		assert.Equal(t, 2024, report.Year)
		assert.True(t, report.IncomeByCategory["Freelance"].Equal(decimal.RequireFromString("500.00")))
		assert.Empty(t, report.ExpensesByCategory)
		assert.True(t, report.NetSavings.Equal(decimal.RequireFromString("500.00")))
	})

	t.Run("groups_and_bounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		svc := NewReportService(storage.NewGormGateway(db))

		salary := testutil.CreateTestNamedCategory(t, db, user.ID, "Salary", models.CategoryTypeIncome, false)
		food := testutil.CreateTestNamedCategory(t, db, user.ID, "Food", models.CategoryTypeExpense, false)
		rent := testutil.CreateTestNamedCategory(t, db, user.ID, "Rent", models.CategoryTypeExpense, false)
		otherFood := testutil.CreateTestNamedCategory(t, db, other.ID, "Food", models.CategoryTypeExpense, false)

		testutil.CreateTestTransaction(t, db, user.ID, salary, "3000.00", testutil.Date(2024, time.February, 1))
		testutil.CreateTestTransaction(t, db, user.ID, food, "12.10", testutil.Date(2024, time.February, 3))
		testutil.CreateTestTransaction(t, db, user.ID, food, "7.45", testutil.Date(2024, time.February, 29))
		testutil.CreateTestTransaction(t, db, user.ID, rent, "1200.00", testutil.Date(2024, time.February, 5))
		testutil.CreateTestTransaction(t, db, user.ID, food, "99.00", testutil.Date(2024, time.January, 31))
		testutil.CreateTestTransaction(t, db, user.ID, food, "99.00", testutil.Date(2024, time.March, 1))
		testutil.CreateTestTransaction(t, db, other.ID, otherFood, "50.00", testutil.Date(2024, time.February, 10))

		report, err := svc.MonthlyReport(context.Background(), user.ID, 2024, 2)
		testutil.AssertNoError(t, err)

		assert.Len(t, report.IncomeByCategory, 1)
		assert.Len(t, report.ExpensesByCategory, 2)
		assert.True(t, report.ExpensesByCategory["Food"].Equal(decimal.RequireFromString("19.55")), "food = %s", report.ExpensesByCategory["Food"])
		assert.True(t, report.TotalExpenses.Equal(decimal.RequireFromString("1219.55")))
		assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("3000")))
		assert.True(t, report.NetSavings.Equal(decimal.RequireFromString("1780.45")))
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(storage.NewGormGateway(db))

		for _, month := range []int{0, 13, -1} {
			_, err := svc.MonthlyReport(context.Background(), "user", 2024, month)
			testutil.AssertAppError(t, err, "INVALID_REPORT_PERIOD")
		}
	})
}

func TestYearlyReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewReportService(storage.NewGormGateway(db))

	salary := testutil.CreateTestNamedCategory(t, db, user.ID, "Salary", models.CategoryTypeIncome, false)
	food := testutil.CreateTestNamedCategory(t, db, user.ID, "Food", models.CategoryTypeExpense, false)

	testutil.CreateTestTransaction(t, db, user.ID, salary, "100.00", testutil.Date(2024, time.January, 1))
	testutil.CreateTestTransaction(t, db, user.ID, food, "100.00", testutil.Date(2024, time.December, 31))
	testutil.CreateTestTransaction(t, db, user.ID, food, "5.00", testutil.Date(2023, time.December, 31))
	testutil.CreateTestTransaction(t, db, user.ID, salary, "5.00", testutil.Date(2025, time.January, 1))

	report, err := svc.YearlyReport(context.Background(), user.ID, 2024)
	testutil.AssertNoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.NetSavings.IsZero())
	assert.Equal(t, "0", report.NetSavings.String())

	empty, err := svc.YearlyReport(context.Background(), user.ID, 1999)
	testutil.AssertNoError(t, err)
	assert.NotNil(t, empty.IncomeByCategory)
	assert.Equal(t, "0", empty.NetSavings.String())
}
