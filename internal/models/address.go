package models

import "github.com/gocql/gocql"

type Address struct {
	ID         gocql.UUID `json:"id"`
	CustomerID string     `json:"customer_id"`
	FullName   string     `json:"full_name" binding:"required"`
	Phone      string     `json:"phone" binding:"required"`
	Line1      string     `json:"line1" binding:"required"`
	Line2      string     `json:"line2,omitempty"`
	City       string     `json:"city" binding:"required"`
	State      string     `json:"state,omitempty"`
	PostalCode string     `json:"postal_code" binding:"required"`
	Country    string     `json:"country" binding:"required"`
	IsDefault  bool       `json:"is_default"`
}
