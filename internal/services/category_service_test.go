package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/storage"
	"finance/internal/testutil"
)

func TestProvisionDefaultCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(storage.NewGormGateway(db))
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)

	require.NoError(t, svc.ProvisionDefaultCategories(ctx, user.ID))

	categories, err := svc.ListCategories(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 7)

	var income, expense int
	for _, c := range categories {
		assert.False(t, c.IsCustom, "%s should be a default category", c.Name)
		switch c.Type {
		case models.CategoryTypeIncome:
			income++
			assert.Equal(t, "Salary", c.Name)
		case models.CategoryTypeExpense:
			expense++
		}
	}
	assert.Equal(t, 1, income)
	assert.Equal(t, 6, expense)
}

func TestCreateCustomCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCustomCategory(context.Background(), user.ID, "Freelance", models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)

		assert.Equal(t, CategoryResponse{Name: "Freelance", Type: models.CategoryTypeIncome, IsCustom: true}, *cat)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedCategory(t, db, user.ID, "Food", models.CategoryTypeExpense, false)

		_, err := svc.CreateCustomCategory(context.Background(), user.ID, "Food", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
		testutil.AssertErrorKind(t, err, apperrors.KindConflict)
		assert.Equal(t, "Category with name 'Food' already exists.", err.Error())
	})

	t.Run("same_name_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedCategory(t, db, alice.ID, "Gym", models.CategoryTypeExpense, true)

		_, err := svc.CreateCustomCategory(context.Background(), bob.ID, "Gym", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
	})

	t.Run("blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCustomCategory(context.Background(), user.ID, "   ", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCustomCategory(context.Background(), user.ID, "Misc", models.CategoryType("TRANSFER"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteCategoryByName(t *testing.T) {
	t.Run("unused_custom", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		ctx := context.Background()
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedCategory(t, db, user.ID, "Gym", models.CategoryTypeExpense, true)

		testutil.AssertNoError(t, svc.DeleteCategoryByName(ctx, user.ID, "Gym"))

		categories, err := svc.ListCategories(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteCategoryByName(context.Background(), user.ID, "Nope")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
		assert.Equal(t, "Category 'Nope' not found.", err.Error())
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedCategory(t, db, alice.ID, "Gym", models.CategoryTypeExpense, true)

		err := svc.DeleteCategoryByName(context.Background(), bob.ID, "Gym")
		testutil.AssertErrorKind(t, err, apperrors.KindNotFound)
	})

	t.Run("default_is_protected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(storage.NewGormGateway(db))
		ctx := context.Background()
		user := testutil.CreateTestUser(t, db)
		require.NoError(t, svc.ProvisionDefaultCategories(ctx, user.ID))

		for _, d := range defaultCategories {
			err := svc.DeleteCategoryByName(ctx, user.ID, d.Name)
			testutil.AssertAppError(t, err, "DEFAULT_CATEGORY_PROTECTED")
			testutil.AssertErrorKind(t, err, apperrors.KindForbidden)
		}

		categories, err := svc.ListCategories(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, categories, 7)
	})

	t.Run("in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gw := storage.NewGormGateway(db)
		svc := NewCategoryService(gw)
		ctx := context.Background()
		user := testutil.CreateTestUser(t, db)
		gym := testutil.CreateTestNamedCategory(t, db, user.ID, "Gym", models.CategoryTypeExpense, true)
		txn := testutil.CreateTestTransaction(t, db, user.ID, gym, "45.00", testutil.Date(2024, time.January, 3))

		err := svc.DeleteCategoryByName(ctx, user.ID, "Gym")
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
		testutil.AssertErrorKind(t, err, apperrors.KindBadRequest)

		still, err := gw.Categories().FindByNameAndUserID(ctx, "Gym", user.ID)
		require.NoError(t, err)
		assert.Equal(t, gym.ID, still.ID)

		reloaded, err := gw.Transactions().FindByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, gym.ID, reloaded.CategoryID)
		assert.Equal(t, "Gym", reloaded.CategoryName)
	})
}
