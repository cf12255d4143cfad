package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance/internal/models"
	"finance/internal/pagination"
)

type gormGateway struct {
	db *gorm.DB
}

// NewGormGateway returns a Gateway backed by db.
func NewGormGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db}
}

func (g *gormGateway) Users() UserRepository { return &userRepo{db: g.db} }
func (g *gormGateway) Categories() CategoryRepository { return &categoryRepo{db: g.db} }
func (g *gormGateway) Transactions() TransactionRepository { return &transactionRepo{db: g.db} }
func (g *gormGateway) SavingsGoals() SavingsGoalRepository { return &savingsGoalRepo{db: g.db} }
func (g *gormGateway) AuditLogs() AuditLogRepository { return &auditLogRepo{db: g.db} }

func (g *gormGateway) InTransaction(ctx context.Context, fn func(Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormGateway{db: tx})
	})
}

// first runs a First query and translates a missing row into ErrNotFound.
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func exists(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// save inserts rows that have no id yet and overwrites the rest.
func save(db *gorm.DB, id string, value any) error {
	var err error
	if id == "" {
		err = db.Create(value).Error
	} else {
		err = db.Save(value).Error
	}
	return translate(err)
}

// translate maps driver errors onto the package sentinels. It relies on the
// connection being opened with gorm.Config.TranslateError.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type userRepo struct{ db *gorm.DB }

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return first[models.User](r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username))
}

func (r *userRepo) Save(ctx context.Context, user *models.User) error {
	return save(r.db.WithContext(ctx), user.ID, user)
}

type categoryRepo struct{ db *gorm.DB }

func (r *categoryRepo) FindByUserID(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_custom ASC").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByNameAndUserID(ctx context.Context, name, userID string) (*models.Category, error) {
	return first[models.Category](r.db.WithContext(ctx).Where("name = ? AND user_id = ?", name, userID))
}

func (r *categoryRepo) ExistsByNameAndUserID(ctx context.Context, name, userID string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ? AND user_id = ?", name, userID))
}

func (r *categoryRepo) ExistsByIDAndIsCustom(ctx context.Context, id string, isCustom bool) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ? AND is_custom = ?", id, isCustom))
}

func (r *categoryRepo) Save(ctx context.Context, category *models.Category) error {
	return save(r.db.WithContext(ctx), category.ID, category)
}

func (r *categoryRepo) SaveAll(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&categories).Error)
}

func (r *categoryRepo) Delete(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", category.ID).Error
}

type transactionRepo struct{ db *gorm.DB }

func (r *transactionRepo) FindByUserIDOrderByDateDesc(ctx context.Context, userID string) ([]models.Transaction, error) {
	return r.FindByFilters(ctx, userID, TransactionQuery{})
}

func (r *transactionRepo) filtered(ctx context.Context, userID string, q TransactionQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if q.StartDate != nil {
		db = db.Where("date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("date <= ?", *q.EndDate)
	}
	if q.CategoryID != nil {
		db = db.Where("category_id = ?", *q.CategoryID)
	}
	return db
}

func (r *transactionRepo) FindByFilters(ctx context.Context, userID string, q TransactionQuery) ([]models.Transaction, error) {
	db := r.filtered(ctx, userID, q).Order("date DESC").Order("created_at DESC")
	if q.Page != nil {
		db = db.Scopes(pagination.Paginate(*q.Page))
	}
	var txns []models.Transaction
	err := db.Find(&txns).Error
	return txns, err
}

func (r *transactionRepo) CountByFilters(ctx context.Context, userID string, q TransactionQuery) (int64, error) {
	var count int64
	err := r.filtered(ctx, userID, q).Count(&count).Error
	return count, err
}

func (r *transactionRepo) FindByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Transaction, error) {
	return r.FindByFilters(ctx, userID, TransactionQuery{StartDate: &start, EndDate: &end})
}

func (r *transactionRepo) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	return first[models.Transaction](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *transactionRepo) ExistsByCategoryID(ctx context.Context, categoryID string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Transaction{}).Where("category_id = ?", categoryID))
}

func (r *transactionRepo) SumAmountByTypeAndDateRange(ctx context.Context, userID string, txType models.CategoryType, start, end time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, txType, start, end).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

func (r *transactionRepo) Save(ctx context.Context, txn *models.Transaction) error {
	return save(r.db.WithContext(ctx), txn.ID, txn)
}

func (r *transactionRepo) Delete(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", txn.ID).Error
}

type savingsGoalRepo struct{ db *gorm.DB }

func (r *savingsGoalRepo) FindByUserID(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date ASC").
		Order("created_at ASC").
		Find(&goals).Error
	return goals, err
}

func (r *savingsGoalRepo) FindByID(ctx context.Context, id string) (*models.SavingsGoal, error) {
	return first[models.SavingsGoal](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *savingsGoalRepo) Save(ctx context.Context, goal *models.SavingsGoal) error {
	return save(r.db.WithContext(ctx), goal.ID, goal)
}

func (r *savingsGoalRepo) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.SavingsGoal{}, "id = ?", id).Error
}

type auditLogRepo struct{ db *gorm.DB }

func (r *auditLogRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
