package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgencyType classifies agencies and caps how much debt they may carry.
type AgencyType struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	MaxDebt   int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new agency type
func (t *AgencyType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AgencyType model
func (AgencyType) TableName() string {
	return "agency_types"
}

// MarshalJSON converts AgencyType to JSON with a decimal max debt
func (t AgencyType) MarshalJSON() ([]byte, error) {
	type Alias AgencyType
	return json.Marshal(&struct {
		Alias
		MaxDebt float64 `json:"max_debt"`
	}{
		Alias:   Alias(t),
		MaxDebt: float64(t.MaxDebt) / 100,
	})
}

// Agency represents a distribution agency
type Agency struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TypeID        *uuid.UUID     `gorm:"type:uuid;index" json:"type_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	District      string         `gorm:"size:100" json:"district"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	Debt          int64          `gorm:"default:0" json:"-"` // Stored in cents
	ReceptionDate time.Time      `gorm:"type:date" json:"reception_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Type     *AgencyType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Issues   []Issue     `gorm:"foreignKey:AgencyID" json:"-"`
	Receipts []Receipt   `gorm:"foreignKey:AgencyID" json:"-"`
	Payments []Payment   `gorm:"foreignKey:AgencyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new agency
func (a *Agency) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Agency model
func (Agency) TableName() string {
	return "agencies"
}

// GetDebtDecimal returns the outstanding debt as a decimal
func (a *Agency) GetDebtDecimal() float64 {
	return float64(a.Debt) / 100
}

// MarshalJSON converts Agency to JSON with a decimal debt
func (a Agency) MarshalJSON() ([]byte, error) {
	type Alias Agency
	return json.Marshal(&struct {
		Alias
		Debt float64 `json:"debt"`
	}{
		Alias: Alias(a),
		Debt:  a.GetDebtDecimal(),
	})
}
