package model

import (
	"time"

	"gorm.io/gorm"
)

// Business represents the business (tenant) model stored in the database
// This is the root of ownership in our multi-tenant architecture
type Business struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	OwnerID     uint           `json:"owner_id" gorm:"index;not null"`
	Active      bool           `json:"active" gorm:"default:true"`
	Settings    string         `json:"settings" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Store represents a physical or virtual store (sub-tenant) owned by a business
type Store struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null;comment:'Business this store belongs to'"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Address    string         `json:"address" gorm:"type:text"`
	Phone      string         `json:"phone" gorm:"type:varchar(20)"`
	Active     bool           `json:"active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Business Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
}

// BusinessSetting holds per-business configuration
type BusinessSetting struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Currency   string         `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	Timezone   string         `json:"timezone" gorm:"type:varchar(50)"`
	Settings   string         `json:"settings" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// StoreSetting holds per-store configuration
type StoreSetting struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StoreID   uint           `json:"store_id" gorm:"index;not null"`
	Settings  string         `json:"settings" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
