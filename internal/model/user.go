package model

import (
	"time"

	"gorm.io/gorm"
)

// RoleSuperAdmin is the platform-wide privileged role. Accounts holding it are
// global (not scoped to any business) and are never removed by the
// reclamation engine.
const RoleSuperAdmin = "superadmin"

// User represents the user model stored in the database
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Email      string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password   string         `json:"-" gorm:"type:varchar(255)"`
	Name       string         `json:"name" gorm:"type:varchar(100)"`
	Role       string         `json:"role" gorm:"type:varchar(50);index;not null;default:'member'"`
	BusinessID *uint          `json:"business_id,omitempty" gorm:"index"`
	IsDemo     bool           `json:"is_demo" gorm:"default:false"`
	Active     bool           `json:"active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsSuperAdmin reports whether the user holds the platform-wide privileged role
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
