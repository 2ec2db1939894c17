package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	ListWithCursor(ctx context.Context, params *ItemCursorFilterParams) ([]entity.Item, error)
	// ListAll returns every item without pagination, for the reconciliation
	// diagnostic. Order is stable (creation order).
	ListAll(ctx context.Context) ([]entity.Item, error)
	GetLowStock(ctx context.Context) ([]entity.Item, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error
	// AtomicDecrementBatch decrements stock for multiple items in one
	// transaction, only where sufficient quantity exists. Returns the IDs that
	// failed the sufficiency condition; any failure rolls back the whole batch.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]float64) ([]uuid.UUID, error)
	// AtomicIncrementBatch increments stock for multiple items in one transaction.
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]float64) error
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ItemCursorFilterParams contains cursor-based filtering for item queries
type ItemCursorFilterParams struct {
	Cursor   *pagination.CursorParams
	Search   string
	LowStock bool
}
