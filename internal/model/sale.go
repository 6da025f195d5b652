package model

import (
	"time"

	"gorm.io/gorm"
)

// Sale represents a completed point-of-sale transaction for a store
type Sale struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	StoreID    uint           `json:"store_id" gorm:"index;not null;comment:'Store this sale belongs to'"`
	CustomerID *uint          `json:"customer_id,omitempty" gorm:"index"`
	CashierID  uint           `json:"cashier_id" gorm:"index"`
	Total      float64        `json:"total" gorm:"not null"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'completed'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Items []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is a line item of a sale. The database cascades these on sale
// deletion, but the reclamation engine still deletes them explicitly so
// reported counts stay accurate.
type SaleItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SaleID    uint      `json:"sale_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unit_price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer represents a store's customer record
type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StoreID   uint           `json:"store_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	Phone     string         `json:"phone" gorm:"type:varchar(20)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SavedCart is an in-progress cart parked by a cashier
type SavedCart struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StoreID   uint           `json:"store_id" gorm:"index;not null"`
	CashierID uint           `json:"cashier_id" gorm:"index"`
	Items     string         `json:"items" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// PublicOrder is an order placed through a business's public storefront
type PublicOrder struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	BusinessID    uint           `json:"business_id" gorm:"index;not null"`
	CustomerName  string         `json:"customer_name" gorm:"type:varchar(100)"`
	CustomerEmail string         `json:"customer_email" gorm:"type:varchar(100)"`
	Total         float64        `json:"total"`
	Status        string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
