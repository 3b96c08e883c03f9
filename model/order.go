package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// OrderedProduct is the per-item snapshot taken at checkout. Prices are
// frozen here; later product edits never touch past orders.
type OrderedProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Custom type to handle []OrderedProduct as JSON in DB
type OrderedProducts []OrderedProduct

func (p OrderedProducts) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *OrderedProducts) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported column type for ordered products")
}

const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case StatusNotProcess, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Products  OrderedProducts `gorm:"type:jsonb" json:"products"`
	Payment   datatypes.JSON  `json:"payment"`
	BuyerID   uint            `gorm:"index" json:"buyer_id"`
	Buyer     *User           `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Status    string          `gorm:"default:'Not Process'" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
