package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// ItemService handles item-related operations
type ItemService struct {
	itemRepo    repository.ItemRepository
	broadcaster *inventory.Broadcaster
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, broadcaster *inventory.Broadcaster) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		broadcaster: broadcaster,
	}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name          string
	Code          string
	Unit          string
	UnitPrice     float64
	QuantityAlert float64
	Notes         *string
}

// CreateItem creates a new inventory item with zero stock
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	existing, err := s.itemRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item code already exists")
	}

	item := &entity.Item{
		Name:          input.Name,
		Code:          input.Code,
		Unit:          input.Unit,
		QuantityAlert: input.QuantityAlert,
		Notes:         input.Notes,
	}
	item.SetUnitPriceFromDecimal(input.UnitPrice)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	Name          *string
	Unit          *string
	UnitPrice     *float64
	QuantityAlert *float64
	Notes         *string
}

// UpdateItem updates item attributes. Stock quantity is deliberately not
// part of this input: it only moves through receipts, issues, or SetStock.
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.UnitPrice != nil {
		item.SetUnitPriceFromDecimal(*input.UnitPrice)
	}
	if input.QuantityAlert != nil {
		item.QuantityAlert = *input.QuantityAlert
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

// ListItems lists items with filtering
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListItemsWithCursor lists items with cursor-based pagination
func (s *ItemService) ListItemsWithCursor(ctx context.Context, params *repository.ItemCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Item], error) {
	items, err := s.itemRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, trimmed := pagination.NewCursorPagination(items, params.Cursor.Limit,
		func(i entity.Item) string { return i.ID.String() },
		func(i entity.Item) time.Time { return i.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(trimmed, cursorPag), nil
}

// GetLowStock returns items at or below their alert threshold
func (s *ItemService) GetLowStock(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.GetLowStock(ctx)
}

// SetStock is the administrative stock-set action: it overwrites the cached
// quantity directly and bumps the inventory version so views refetch.
func (s *ItemService) SetStock(ctx context.Context, id uuid.UUID, quantity float64) (*entity.Item, error) {
	if quantity < 0 {
		return nil, apperror.NewBadRequestError("Stock quantity cannot be negative")
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if err := s.itemRepo.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}

	item.Quantity = quantity
	s.broadcaster.Bump()
	return item, nil
}
