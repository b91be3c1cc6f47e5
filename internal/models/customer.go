package models

import "time"

// Customer mappe une identité externe (fournisseur OAuth) vers une ligne
// interne, relation 1:1 via ExternalID.
type Customer struct {
	ID         string    `json:"customer_id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	Role       string    `json:"role,omitempty"` // "admin" ou vide
	Provider   string    `json:"provider,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
