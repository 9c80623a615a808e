package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Budget is a per-category spending limit for one calendar month.
// A user can hold at most one budget per (category, month, year); the
// composite unique index on CategoryKey enforces it case-insensitively.
// Budgets are hard-deleted so the index never collides with dead rows.
type Budget struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_budget_owner_period"`
	Category    string    `json:"category" gorm:"size:50;not null"`
	CategoryKey string    `json:"-" gorm:"size:50;not null;uniqueIndex:idx_budget_owner_period"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Month       int       `json:"month" gorm:"not null;uniqueIndex:idx_budget_owner_period"`
	Year        int       `json:"year" gorm:"not null;uniqueIndex:idx_budget_owner_period"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

func (Budget) TableName() string {
	return "budgets"
}

// BeforeSave keeps the uniqueness key in sync with the display category.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)
	b.CategoryKey = strings.ToLower(b.Category)
	return nil
}
