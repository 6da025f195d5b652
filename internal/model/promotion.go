package model

import (
	"time"

	"gorm.io/gorm"
)

// Coupon represents a discount coupon defined by a business
type Coupon struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Code       string         `json:"code" gorm:"type:varchar(50);index;not null"`
	Discount   float64        `json:"discount" gorm:"not null"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// CouponUsage tracks a single redemption of a coupon. It has no business
// column of its own; ownership is derived through the coupon.
type CouponUsage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CouponID   uint      `json:"coupon_id" gorm:"index;not null"`
	CustomerID uint      `json:"customer_id" gorm:"index"`
	UsedAt     time.Time `json:"used_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Promotion represents a time-bound promotional campaign
type Promotion struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Discount   float64        `json:"discount"`
	StartsAt   *time.Time     `json:"starts_at,omitempty"`
	EndsAt     *time.Time     `json:"ends_at,omitempty"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// PromotionUsage tracks a single application of a promotion, keyed to the
// promotion rather than to a business.
type PromotionUsage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PromotionID uint      `json:"promotion_id" gorm:"index;not null"`
	SaleID      uint      `json:"sale_id" gorm:"index"`
	UsedAt      time.Time `json:"used_at"`
	CreatedAt   time.Time `json:"created_at"`
}
