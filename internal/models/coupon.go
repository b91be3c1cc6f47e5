package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// Types de coupons (alignés sur l'enum du dashboard admin)
const (
	CouponTypePercentage   = "PERCENTAGE"
	CouponTypeFixedAmount  = "FIXED_AMOUNT"
	CouponTypeFreeShipping = "FREE_SHIPPING"
)

type Coupon struct {
	ID                    gocql.UUID       `json:"id"`
	Code                  string           `json:"code"` // stocké en MAJUSCULES
	Description           string           `json:"description,omitempty"`
	Type                  string           `json:"type"`
	Value                 decimal.Decimal  `json:"value"`
	MinPurchase           *decimal.Decimal `json:"min_purchase,omitempty"`
	MaxDiscount           *decimal.Decimal `json:"max_discount,omitempty"` // plafond de réduction (PERCENTAGE uniquement)
	UsageLimit            int              `json:"usage_limit"`              // 0 = illimité
	UsageLimitPerCustomer int              `json:"usage_limit_per_customer"` // 0 = illimité
	UsageCount            int              `json:"usage_count"`
	StartDate             time.Time        `json:"start_date"`
	EndDate               time.Time        `json:"end_date"`
	IsActive              bool             `json:"is_active"`
	CreatedBy             string           `json:"created_by"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

type CouponUsage struct {
	ID         gocql.UUID `json:"id"`
	CouponID   gocql.UUID `json:"coupon_id"`
	CustomerID string     `json:"customer_id"`
	OrderID    gocql.UUID `json:"order_id"`
	UsedAt     time.Time  `json:"used_at"`
}

type CouponValidation struct {
	IsValid      bool            `json:"is_valid"`
	Reason       string          `json:"reason,omitempty"` // code machine (Expired, Inactive, ...)
	ErrorMessage string          `json:"error_message,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	Type         string          `json:"type,omitempty"`
	Code         string          `json:"code,omitempty"`
}
