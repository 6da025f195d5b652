package model

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a business-defined role (cashier, manager, ...). These are
// distinct from the platform-wide privileged role, which is a fixed constant.
type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	BusinessID  uint           `json:"business_id" gorm:"index;not null;comment:'Business this role belongs to'"`
	Name        string         `json:"name" gorm:"type:varchar(50);not null"`
	Permissions string         `json:"permissions" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// UserRole assigns a business-defined role to a user
type UserRole struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	RoleID     uint           `json:"role_id" gorm:"index;not null"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Role Role `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

// UserBusinessRole represents the association between users and businesses
// This enables multi-tenancy by allowing users to belong to multiple businesses
type UserBusinessRole struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Role       string         `json:"role" gorm:"type:varchar(50);not null;default:'member'"`
	IsDefault  bool           `json:"is_default" gorm:"default:false"`
	Active     bool           `json:"active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Business Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
}
