package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a transaction record. Amount is signed: positive entries are
// income-like, negative entries are spending.
type Expense struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Title     string         `json:"title" gorm:"size:100;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category  string         `json:"category" gorm:"size:50"`
	Date      time.Time      `json:"date" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}
