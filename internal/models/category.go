package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category groups transactions. The (user, name) pair is unique. Default
// categories (IsCustom=false) are provisioned at registration and are
// permanent; custom categories may be removed while unused.
type Category struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;uniqueIndex:uq_categories_user_name" json:"user_id"`
	Name     string       `gorm:"not null;uniqueIndex:uq_categories_user_name" json:"name"`
	Type     CategoryType `gorm:"not null" json:"type"`
	IsCustom bool         `gorm:"not null" json:"is_custom"`
}
