package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a stock item in the inventory.
//
// Quantity is server-authoritative but ledger-derived: it must equal total
// received minus total issued, and is only ever written through receipt/issue
// operations or the explicit administrative stock set.
type Item struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	Unit          string         `gorm:"size:50;not null" json:"unit"`
	UnitPrice     int64          `gorm:"default:0" json:"-"` // Stored in cents
	Quantity      float64        `gorm:"default:0" json:"quantity"`
	QuantityAlert float64        `gorm:"default:0" json:"quantity_alert"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// GetUnitPriceDecimal returns the unit price as a decimal (for display)
func (i *Item) GetUnitPriceDecimal() float64 {
	return float64(i.UnitPrice) / 100
}

// SetUnitPriceFromDecimal sets the unit price from a decimal value
func (i *Item) SetUnitPriceFromDecimal(price float64) {
	i.UnitPrice = int64(price * 100)
}

// MarshalJSON converts Item to JSON with a decimal unit price
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: i.GetUnitPriceDecimal(),
	})
}
