package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a savings target. IsCompleted is derived from the amounts and must
// be recomputed on every mutation path, never edited directly.
type Goal struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Name          string         `json:"name" gorm:"size:100;not null"`
	TargetAmount  float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	CurrentAmount float64        `json:"current_amount" gorm:"type:decimal(10,2);not null;default:0"`
	TargetDate    *time.Time     `json:"target_date"`
	IsCompleted   bool           `json:"is_completed" gorm:"not null;default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

func (Goal) TableName() string {
	return "goals"
}

// Recompute refreshes the derived completion flag.
func (g *Goal) Recompute() {
	g.IsCompleted = g.CurrentAmount >= g.TargetAmount
}
