package models

import (
	"time"

	"gorm.io/gorm"
)

// Income is a standalone income entry with a non-negative amount.
type Income struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Source    string         `json:"source" gorm:"size:100;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date      time.Time      `json:"date" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

func (Income) TableName() string {
	return "incomes"
}
