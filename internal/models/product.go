package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID                gocql.UUID      `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	SKU               string          `json:"sku"`
	CategoryID        gocql.UUID      `json:"category_id"`
	ImageURLs         []string        `json:"image_urls"`
	Tags              []string        `json:"tags"`
	IsActive          bool            `json:"is_active"`
	HasVariants       bool            `json:"has_variants"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ProductVariant struct {
	ID        gocql.UUID      `json:"id"`
	ProductID gocql.UUID      `json:"product_id"`
	Name      string          `json:"name"` // ex: "Rouge / M"
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	SKU       string          `json:"sku"`
}
