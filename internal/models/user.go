package models

// User represents an account holder. Deleting a user cascades to everything
// the user owns.
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	Password     string        `gorm:"not null" json:"-"`
	FullName     string        `gorm:"not null" json:"full_name"`
	PhoneNumber  string        `gorm:"not null" json:"phone_number"`
	Categories   []Category    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SavingsGoals []SavingsGoal `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
