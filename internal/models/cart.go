package models

import "github.com/shopspring/decimal"

type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
}

type CartItem struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	VariantName string          `json:"variant_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
