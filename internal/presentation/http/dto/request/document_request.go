package request

import (
	"time"

	"github.com/google/uuid"
)

// DocumentLineRequest represents one line of a receipt or issue
type DocumentLineRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" binding:"min=0"`
}

// CreateReceiptRequest represents a receipt creation request
type CreateReceiptRequest struct {
	AgencyID    uuid.UUID             `json:"agency_id" binding:"required"`
	ReceiptDate *time.Time            `json:"receipt_date"`
	Items       []DocumentLineRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateIssueRequest represents an issue creation request
type CreateIssueRequest struct {
	AgencyID  uuid.UUID             `json:"agency_id" binding:"required"`
	IssueDate *time.Time            `json:"issue_date"`
	Items     []DocumentLineRequest `json:"items" binding:"required,min=1,dive"`
}

// PostponeIssueRequest represents a postpone request with its reason
type PostponeIssueRequest struct {
	Reason string `json:"reason" binding:"required,min=2"`
}

// CreatePaymentRequest represents a payment creation request
type CreatePaymentRequest struct {
	AgencyID    uuid.UUID  `json:"agency_id" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	PaymentDate *time.Time `json:"payment_date"`
	Notes       *string    `json:"notes"`
}

// DocumentFilterRequest represents filter parameters shared by receipts,
// issues and payments
type DocumentFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	AgencyID  string `form:"agency_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
