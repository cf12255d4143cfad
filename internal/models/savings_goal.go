package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount to reach by TargetDate. Progress is not
// stored; it is derived from the owner's transactions since StartDate.
type SavingsGoal struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalName     string          `gorm:"not null" json:"goal_name"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"target_amount"`
	TargetDate   time.Time       `gorm:"type:date;not null" json:"target_date"`
	StartDate    time.Time       `gorm:"type:date;not null" json:"start_date"`
}
