package model

import "time"

type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `json:"name"`
	Slug             string    `gorm:"uniqueIndex" json:"slug"`
	Description      string    `gorm:"type:text" json:"description"`
	Price            float64   `json:"price"`
	CategoryID       uint      `gorm:"index;not null" json:"category_id"`
	Category         *Category `json:"category,omitempty"`
	Quantity         int       `json:"quantity"`
	Shipping         bool      `json:"shipping"`
	Photo            []byte    `json:"-"`
	PhotoContentType string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProductColumns is the column list for catalog reads. The photo blob is
// never selected outside the dedicated photo endpoint.
const ProductColumns = "id, name, slug, description, price, category_id, quantity, shipping, created_at"
