package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	domainRepo "github.com/ndtduy/agency-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Agency").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Agency").
		Preload("Details.Item").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.AgencyID != nil {
		query = query.Where("agency_id = ?", *params.AgencyID)
	}

	if params.StartDate != nil {
		query = query.Where("receipt_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("receipt_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Agency").
		Order(sortBy + " " + sortOrder).
		Find(&receipts).Error

	return receipts, total, err
}

// ListAllWithDetails returns every receipt with its lines, for the reconciliation diagnostic
func (r *receiptRepository) ListAllWithDetails(ctx context.Context) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Details").
		Order("created_at ASC, id ASC").
		Find(&receipts).Error
	return receipts, err
}

type receiptDetailRepository struct {
	db *gorm.DB
}

// NewReceiptDetailRepository creates a new receipt detail repository
func NewReceiptDetailRepository(db *gorm.DB) domainRepo.ReceiptDetailRepository {
	return &receiptDetailRepository{db: db}
}

func (r *receiptDetailRepository) CreateBatch(ctx context.Context, details []entity.ReceiptDetail) error {
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *receiptDetailRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptDetail, error) {
	var details []entity.ReceiptDetail
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("receipt_id = ?", receiptID).
		Find(&details).Error
	return details, err
}

func (r *receiptDetailRepository) DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ReceiptDetail{}, "receipt_id = ?", receiptID).Error
}
