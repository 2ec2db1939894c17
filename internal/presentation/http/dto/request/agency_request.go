package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateAgencyRequest represents an agency creation request
type CreateAgencyRequest struct {
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	TypeID        *uuid.UUID `json:"type_id"`
	District      string     `json:"district" binding:"max=100"`
	Phone         *string    `json:"phone" binding:"omitempty,max=50"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	Address       *string    `json:"address"`
	ReceptionDate *time.Time `json:"reception_date"`
}

// UpdateAgencyRequest represents an agency update request
type UpdateAgencyRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=2,max=255"`
	TypeID   *uuid.UUID `json:"type_id"`
	District *string    `json:"district" binding:"omitempty,max=100"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Address  *string    `json:"address"`
}

// CreateAgencyTypeRequest represents an agency type creation request
type CreateAgencyTypeRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	MaxDebt float64 `json:"max_debt" binding:"min=0"`
}

// AgencyFilterRequest represents agency filter parameters
type AgencyFilterRequest struct {
	Search    string `form:"search"`
	TypeID    string `form:"type_id"`
	District  string `form:"district"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
