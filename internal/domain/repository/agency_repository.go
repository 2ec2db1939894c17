package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// AgencyRepository defines the interface for agency data operations
type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	Update(ctx context.Context, agency *entity.Agency) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AgencyFilterParams) ([]entity.Agency, int64, error)
	Count(ctx context.Context) (int64, error)
	// AdjustDebt atomically adds delta (cents, may be negative) to the
	// agency's outstanding debt.
	AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error
	TotalDebt(ctx context.Context) (int64, error)
}

// AgencyFilterParams contains filtering parameters for agency queries
type AgencyFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	TypeID     *uuid.UUID
	District   string
	SortBy     string
	SortOrder  string
}

// AgencyTypeRepository defines the interface for agency type data operations
type AgencyTypeRepository interface {
	Create(ctx context.Context, agencyType *entity.AgencyType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AgencyType, error)
	GetByName(ctx context.Context, name string) (*entity.AgencyType, error)
	List(ctx context.Context) ([]entity.AgencyType, error)
}
