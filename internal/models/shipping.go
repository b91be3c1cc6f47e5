package models

import "github.com/shopspring/decimal"

type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimated_days"`
}

type ShippingCalculation struct {
	Options       []ShippingOption `json:"options"`
	FreeThreshold decimal.Decimal  `json:"free_threshold"`
	CartTotal     decimal.Decimal  `json:"cart_total"`
	IsFree        bool             `json:"is_free"`
}
