package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// ReceiptService handles goods receipts. A receipt moves stock into the
// warehouse the moment it is created, so every mutation here bumps the
// inventory version.
type ReceiptService struct {
	receiptRepo       repository.ReceiptRepository
	receiptDetailRepo repository.ReceiptDetailRepository
	itemRepo          repository.ItemRepository
	agencyRepo        repository.AgencyRepository
	broadcaster       *inventory.Broadcaster
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	receiptDetailRepo repository.ReceiptDetailRepository,
	itemRepo repository.ItemRepository,
	agencyRepo repository.AgencyRepository,
	broadcaster *inventory.Broadcaster,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:       receiptRepo,
		receiptDetailRepo: receiptDetailRepo,
		itemRepo:          itemRepo,
		agencyRepo:        agencyRepo,
		broadcaster:       broadcaster,
	}
}

// ReceiptLineInput represents one line of a receipt
type ReceiptLineInput struct {
	ItemID    uuid.UUID
	Quantity  float64
	UnitPrice float64
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	AgencyID    uuid.UUID
	ReceiptDate *time.Time
	Items       []ReceiptLineInput
}

// CreateReceipt records a goods receipt and increments stock for every line
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if len(input.Items) == 0 {
		return nil, apperror.ErrEmptyDocument
	}

	agency, err := s.agencyRepo.GetByID(ctx, input.AgencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, apperror.NewNotFoundError("Agency")
	}

	itemIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Line quantity must be greater than zero")
		}
		itemIDs = append(itemIDs, line.ItemID)
	}

	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	var missing []string
	for _, line := range input.Items {
		if _, ok := itemsByID[line.ItemID]; !ok {
			missing = append(missing, line.ItemID.String())
		}
	}
	if len(missing) > 0 {
		return nil, apperror.NewNotFoundError("Item(s): " + strings.Join(missing, ", "))
	}

	receiptDate := time.Now()
	if input.ReceiptDate != nil {
		receiptDate = *input.ReceiptDate
	}

	var total int64
	details := make([]entity.ReceiptDetail, 0, len(input.Items))
	increments := make(map[uuid.UUID]float64, len(input.Items))
	for _, line := range input.Items {
		unitPrice := int64(line.UnitPrice * 100)
		if line.UnitPrice == 0 {
			unitPrice = itemsByID[line.ItemID].UnitPrice
		}
		lineTotal := int64(float64(unitPrice) * line.Quantity)

		details = append(details, entity.ReceiptDetail{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
		increments[line.ItemID] += line.Quantity
		total += lineTotal
	}

	receipt := &entity.Receipt{
		AgencyID:    input.AgencyID,
		ReceiptNo:   generateDocumentNo("RCP"),
		ReceiptDate: receiptDate,
		TotalItems:  len(input.Items),
		Total:       total,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	for i := range details {
		details[i].ReceiptID = receipt.ID
	}
	if err := s.receiptDetailRepo.CreateBatch(ctx, details); err != nil {
		_ = s.receiptRepo.Delete(ctx, receipt.ID)
		return nil, err
	}

	if err := s.itemRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		_ = s.receiptDetailRepo.DeleteByReceiptID(ctx, receipt.ID)
		_ = s.receiptRepo.Delete(ctx, receipt.ID)
		return nil, err
	}

	s.broadcaster.Bump()
	return s.receiptRepo.GetWithDetails(ctx, receipt.ID)
}

// GetReceipt retrieves a receipt with its lines
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// DeleteReceipt removes a receipt and takes its stock back out. The delete
// is rejected when the received stock has already been issued, otherwise
// cached quantities would go negative.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	decrements := make(map[uuid.UUID]float64, len(receipt.Details))
	for _, detail := range receipt.Details {
		decrements[detail.ItemID] += detail.Quantity
	}

	failedIDs, err := s.itemRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return err
	}
	if len(failedIDs) > 0 {
		names := itemNamesForIDs(receipt.Details, failedIDs)
		return apperror.NewBadRequestError(
			fmt.Sprintf("Cannot delete receipt: stock already issued for %s", strings.Join(names, ", ")))
	}

	if err := s.receiptDetailRepo.DeleteByReceiptID(ctx, id); err != nil {
		_ = s.itemRepo.AtomicIncrementBatch(ctx, decrements)
		return err
	}
	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		_ = s.itemRepo.AtomicIncrementBatch(ctx, decrements)
		return err
	}

	s.broadcaster.Bump()
	return nil
}

// ListReceipts lists receipts with filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

func itemNamesForIDs(details []entity.ReceiptDetail, ids []uuid.UUID) []string {
	idSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var names []string
	for _, detail := range details {
		if idSet[detail.ItemID] {
			if detail.Item.Name != "" {
				names = append(names, detail.Item.Name)
			} else {
				names = append(names, detail.ItemID.String())
			}
		}
	}
	return names
}
