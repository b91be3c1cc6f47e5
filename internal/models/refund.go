package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

type Refund struct {
	ID             gocql.UUID      `json:"id"`
	OrderID        gocql.UUID      `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"` // pending, approved, rejected
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	StripeRefundID string          `json:"stripe_refund_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}
