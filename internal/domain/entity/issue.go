package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Issue represents an outgoing stock document (export issue) for an agency,
// with a status lifecycle: processing -> confirmed -> delivered, or
// processing -> postponed.
//
// LockVersion is an optimistic-concurrency token: status updates only apply
// when the stored value matches the one the caller read, so two overlapping
// confirms cannot both pass a stock check and decrement stock.
type Issue struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	AgencyID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"agency_id"`
	IssueNo     string           `gorm:"size:100;unique;not null" json:"issue_no"`
	IssueDate   time.Time        `gorm:"type:date;not null" json:"issue_date"`
	Status      enum.IssueStatus `gorm:"default:0" json:"status"`
	Reason      *string          `gorm:"type:text" json:"reason,omitempty"`
	TotalItems  int              `gorm:"default:0" json:"total_items"`
	Total       int64            `gorm:"default:0" json:"-"` // Stored in cents
	LockVersion int              `gorm:"default:1" json:"lock_version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Agency  *Agency       `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Details []IssueDetail `gorm:"foreignKey:IssueID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Issue) MarshalJSON() ([]byte, error) {
	type Alias Issue
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(i),
		Total: float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new issue
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Issue model
func (Issue) TableName() string {
	return "issues"
}

// IssueDetail represents a line item on an issue
type IssueDetail struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	IssueID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"issue_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity  float64        `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Price at time of issue, in cents
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Issue Issue `gorm:"foreignKey:IssueID" json:"-"`
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (id IssueDetail) MarshalJSON() ([]byte, error) {
	type Alias IssueDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(id),
		UnitPrice: float64(id.UnitPrice) / 100,
		Total:     float64(id.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new issue detail
func (id *IssueDetail) BeforeCreate(tx *gorm.DB) error {
	if id.ID == uuid.Nil {
		id.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IssueDetail model
func (IssueDetail) TableName() string {
	return "issue_details"
}
