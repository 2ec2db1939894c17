package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	domainRepo "github.com/ndtduy/agency-api/internal/domain/repository"
	"gorm.io/gorm"
)

type agencyRepository struct {
	db *gorm.DB
}

// NewAgencyRepository creates a new agency repository
func NewAgencyRepository(db *gorm.DB) domainRepo.AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

func (r *agencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	var agency entity.Agency
	err := r.db.WithContext(ctx).
		Preload("Type").
		First(&agency, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agency, err
}

func (r *agencyRepository) Update(ctx context.Context, agency *entity.Agency) error {
	return r.db.WithContext(ctx).Save(agency).Error
}

func (r *agencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Agency{}, "id = ?", id).Error
}

func (r *agencyRepository) List(ctx context.Context, params *domainRepo.AgencyFilterParams) ([]entity.Agency, int64, error) {
	var agencies []entity.Agency
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Agency{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.TypeID != nil {
		query = query.Where("type_id = ?", *params.TypeID)
	}

	if params.District != "" {
		query = query.Where("district = ?", params.District)
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
		Preload("Type").
		Order(sortBy + " " + sortOrder).
		Find(&agencies).Error

	return agencies, total, err
}

func (r *agencyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Agency{}).Count(&total).Error
	return total, err
}

// AdjustDebt atomically adds delta cents to the agency's outstanding debt
func (r *agencyRepository) AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&entity.Agency{}).
		Where("id = ?", id).
		Update("debt", gorm.Expr("debt + ?", delta)).Error
}

func (r *agencyRepository) TotalDebt(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Agency{}).
		Select("COALESCE(SUM(debt), 0)").
		Scan(&total).Error
	return total, err
}

type agencyTypeRepository struct {
	db *gorm.DB
}

// NewAgencyTypeRepository creates a new agency type repository
func NewAgencyTypeRepository(db *gorm.DB) domainRepo.AgencyTypeRepository {
	return &agencyTypeRepository{db: db}
}

func (r *agencyTypeRepository) Create(ctx context.Context, agencyType *entity.AgencyType) error {
	return r.db.WithContext(ctx).Create(agencyType).Error
}

func (r *agencyTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AgencyType, error) {
	var agencyType entity.AgencyType
	err := r.db.WithContext(ctx).First(&agencyType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agencyType, err
}

func (r *agencyTypeRepository) GetByName(ctx context.Context, name string) (*entity.AgencyType, error) {
	var agencyType entity.AgencyType
	err := r.db.WithContext(ctx).First(&agencyType, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agencyType, err
}

func (r *agencyTypeRepository) List(ctx context.Context) ([]entity.AgencyType, error) {
	var types []entity.AgencyType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}
