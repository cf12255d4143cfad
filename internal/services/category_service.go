package services

import (
	"context"
	"errors"
	"strings"

	apperrors "finance/internal/errors"
	"finance/internal/logger"
	"finance/internal/models"
	"finance/internal/storage"
)

// defaultCategories are provisioned for every new user and can never be deleted.
var defaultCategories = []struct {
	Name string
	Type models.CategoryType
}{
	{"Salary", models.CategoryTypeIncome},
	{"Food", models.CategoryTypeExpense},
	{"Rent", models.CategoryTypeExpense},
	{"Transportation", models.CategoryTypeExpense},
	{"Entertainment", models.CategoryTypeExpense},
	{"Healthcare", models.CategoryTypeExpense},
	{"Utilities", models.CategoryTypeExpense},
}

// categoryService handles category-related business logic.
type categoryService struct {
	gw storage.Gateway
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(gw storage.Gateway) CategoryServicer {
	return &categoryService{gw: gw}
}

// ListCategories returns the user's default and custom categories.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]CategoryResponse, error) {
	categories, err := s.gw.Categories().FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i]))
	}
	return out, nil
}

// CreateCustomCategory creates a user-defined category
func (s *categoryService) CreateCustomCategory(ctx context.Context, userID, name string, categoryType models.CategoryType) (*CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category type must be INCOME or EXPENSE")
	}

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     categoryType,
		IsCustom: true,
	}

	err := s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		taken, err := tx.Categories().ExistsByNameAndUserID(ctx, name, userID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if taken {
			return duplicateCategory(name)
		}

		if err := tx.Categories().Save(ctx, category); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return duplicateCategory(name)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := newCategoryResponse(category)
	return &resp, nil
}

func duplicateCategory(name string) error {
	return apperrors.WithMessagef(apperrors.ErrDuplicateCategory, "Category with name '%s' already exists.", name)
}

// DeleteCategoryByName removes an unused custom category.
func (s *categoryService) DeleteCategoryByName(ctx context.Context, userID, name string) error {
	return s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		category, err := tx.Categories().FindByNameAndUserID(ctx, name, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.WithMessagef(apperrors.ErrCategoryNotFound, "Category '%s' not found.", name)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		custom, err := tx.Categories().ExistsByIDAndIsCustom(ctx, category.ID, true)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if !custom {
			return apperrors.ErrDefaultCategoryProtected
		}

		inUse, err := tx.Transactions().ExistsByCategoryID(ctx, category.ID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if inUse {
			return apperrors.ErrCategoryInUse
		}

		if err := tx.Categories().Delete(ctx, category); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ProvisionDefaultCategories creates the fixed default categories for a user.
func (s *categoryService) ProvisionDefaultCategories(ctx context.Context, userID string) error {
	return provisionDefaultCategories(ctx, s.gw.Categories(), userID)
}

// provisionDefaultCategories writes every default category in one batch so it
// can run inside the registration transaction.
func provisionDefaultCategories(ctx context.Context, repo storage.CategoryRepository, userID string) error {
	categories := make([]models.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		categories = append(categories, models.Category{
			UserID:   userID,
			Name:     d.Name,
			Type:     d.Type,
			IsCustom: false,
		})
	}

	if err := repo.SaveAll(ctx, categories); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("categories").Infow("default categories provisioned", "user_id", userID, "count", len(categories))
	return nil
}
