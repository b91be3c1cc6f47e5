package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Category struct {
	ID            gocql.UUID  `json:"id,omitempty"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description,omitempty"`
	ImageURL      string      `json:"image_url,omitempty"`
	ParentID      *gocql.UUID `json:"parent_id,omitempty"`
	IsProtected   bool        `json:"is_protected"`   // catégories système, ni éditables ni supprimables
	AllowChildren bool        `json:"allow_children"` // false pour les catégories marketing
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}
