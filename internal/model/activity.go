package model

import (
	"time"

	"gorm.io/gorm"
)

// ActivityLog records an audit trail entry for a business
type ActivityLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID uint      `json:"business_id" gorm:"index;not null"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Action     string    `json:"action" gorm:"type:varchar(100);not null"`
	Details    string    `json:"details" gorm:"type:jsonb"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is an in-app notification addressed to a business's users
type Notification struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	UserID     *uint          `json:"user_id,omitempty" gorm:"index"`
	Title      string         `json:"title" gorm:"type:varchar(200);not null"`
	Body       string         `json:"body" gorm:"type:text"`
	Read       bool           `json:"read" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
