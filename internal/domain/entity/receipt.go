package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt represents an incoming stock document (import receipt) for an agency.
// It is created atomically with its lines and deleted only as a whole.
type Receipt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AgencyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"agency_id"`
	ReceiptNo   string         `gorm:"size:100;unique;not null" json:"receipt_no"`
	ReceiptDate time.Time      `gorm:"type:date;not null" json:"receipt_date"`
	TotalItems  int            `gorm:"default:0" json:"total_items"`
	Total       int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Agency  *Agency         `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Details []ReceiptDetail `gorm:"foreignKey:ReceiptID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: float64(r.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptDetail represents a line item on a receipt
type ReceiptDetail struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID      `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity  float64        `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Price at time of receipt, in cents
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
	Item    Item    `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (rd ReceiptDetail) MarshalJSON() ([]byte, error) {
	type Alias ReceiptDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(rd),
		UnitPrice: float64(rd.UnitPrice) / 100,
		Total:     float64(rd.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt detail
func (rd *ReceiptDetail) BeforeCreate(tx *gorm.DB) error {
	if rd.ID == uuid.Nil {
		rd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptDetail model
func (ReceiptDetail) TableName() string {
	return "receipt_details"
}
