package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// Statuts de commande
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
	OrderStatusUnknown    = "UNKNOWN" // sentinelle d'erreur, jamais une cible de transition
)

// Statuts de paiement (indépendants du statut de commande)
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
	PaymentStatusUnknown  = "UNKNOWN"
)

// OrderItem est un instantané pris au moment de la commande, pas une
// référence vivante vers le produit.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // prix unitaire
	Total       decimal.Decimal `json:"total"` // prix unitaire × quantité
}

type Order struct {
	ID              gocql.UUID `json:"id"`
	OrderNumber     string     `json:"order_number"`
	CustomerID      string     `json:"customer_id"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`

	Items []OrderItem `json:"items"`

	Subtotal     decimal.Decimal  `json:"subtotal"`
	ShippingCost decimal.Decimal  `json:"shipping_cost"`
	Tax          decimal.Decimal  `json:"tax"`
	Discount     decimal.Decimal  `json:"discount"`
	Total        decimal.Decimal  `json:"total"`
	RefundAmount *decimal.Decimal `json:"refund_amount,omitempty"`

	CouponID   *gocql.UUID `json:"coupon_id,omitempty"`
	CouponCode string      `json:"coupon_code,omitempty"`

	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	AdminNote      string `json:"admin_note,omitempty"`
	CancelReason   string `json:"cancel_reason,omitempty"`

	// Instantané de l'adresse de livraison
	ShippingFullName   string `json:"shipping_full_name"`
	ShippingPhone      string `json:"shipping_phone"`
	ShippingLine1      string `json:"shipping_line1"`
	ShippingLine2      string `json:"shipping_line2,omitempty"`
	ShippingCity       string `json:"shipping_city"`
	ShippingState      string `json:"shipping_state,omitempty"`
	ShippingPostalCode string `json:"shipping_postal_code"`
	ShippingCountry    string `json:"shipping_country"`

	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
