package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	// ListAllWithDetails returns every receipt with its lines, for the
	// reconciliation diagnostic.
	ListAllWithDetails(ctx context.Context) ([]entity.Receipt, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	AgencyID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// ReceiptDetailRepository defines the interface for receipt detail data operations
type ReceiptDetailRepository interface {
	CreateBatch(ctx context.Context, details []entity.ReceiptDetail) error
	GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptDetail, error)
	DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error
}
