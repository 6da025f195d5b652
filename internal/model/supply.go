package model

import (
	"time"

	"gorm.io/gorm"
)

// SupplyOrder represents a purchase order a store places with a supplier
type SupplyOrder struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	StoreID    uint           `json:"store_id" gorm:"index;not null"`
	SupplierID uint           `json:"supplier_id" gorm:"index"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Total      float64        `json:"total"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// SupplyOrderItem is a line item of a supply order. It carries no store
// column; ownership runs through the order.
type SupplyOrderItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SupplyOrderID uint      `json:"supply_order_id" gorm:"index;not null"`
	ProductID     uint      `json:"product_id" gorm:"index"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	UnitCost      float64   `json:"unit_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplyOrderPayment records a payment made against a supply order
type SupplyOrderPayment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SupplyOrderID uint      `json:"supply_order_id" gorm:"index;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Method        string    `json:"method" gorm:"type:varchar(30)"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplyReturn represents goods a store returns to a supplier
type SupplyReturn struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	StoreID    uint           `json:"store_id" gorm:"index;not null"`
	SupplierID uint           `json:"supplier_id" gorm:"index"`
	Reason     string         `json:"reason" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// SupplyReturnItem is a line item of a supply return
type SupplyReturnItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SupplyReturnID uint      `json:"supply_return_id" gorm:"index;not null"`
	ProductID      uint      `json:"product_id" gorm:"index"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// RestockOrder represents an internal restock request for a store
type RestockOrder struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StoreID   uint           `json:"store_id" gorm:"index;not null"`
	Status    string         `json:"status" gorm:"type:varchar(20);default:'open'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// RestockOrderItem is a line item of a restock order
type RestockOrderItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	RestockOrderID uint      `json:"restock_order_id" gorm:"index;not null"`
	ProductID      uint      `json:"product_id" gorm:"index"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}
