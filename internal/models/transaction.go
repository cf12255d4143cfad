package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense entry.
//
// Type and CategoryName mirror the referenced category at the time of the
// last write that bound the category; they are never edited on their own.
type Transaction struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID   string          `gorm:"type:uuid;not null;index" json:"category_id"`
	CategoryName string          `gorm:"not null" json:"category_name"`
	Type         CategoryType    `gorm:"not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"amount"`
	Date         time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description  string          `json:"description"`
}

// BindCategory points the transaction at c and re-derives the denormalized
// fields from it.
func (t *Transaction) BindCategory(c *Category) {
	t.CategoryID = c.ID
	t.CategoryName = c.Name
	t.Type = c.Type
}
