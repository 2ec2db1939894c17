package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	domainRepo "github.com/ndtduy/agency-api/internal/domain/repository"
	"gorm.io/gorm"
)

type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *gorm.DB) domainRepo.IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.WithContext(ctx).
		Preload("Agency").
		First(&issue, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &issue, err
}

func (r *issueRepository) GetByIssueNo(ctx context.Context, issueNo string) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.WithContext(ctx).First(&issue, "issue_no = ?", issueNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &issue, err
}

func (r *issueRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.WithContext(ctx).
		Preload("Agency").
		Preload("Agency.Type").
		Preload("Details.Item").
		First(&issue, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &issue, err
}

func (r *issueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Issue{}, "id = ?", id).Error
}

func (r *issueRepository) List(ctx context.Context, params *domainRepo.IssueFilterParams) ([]entity.Issue, int64, error) {
	var issues []entity.Issue
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Issue{})

	if params.Search != "" {
		query = query.Where("issue_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.AgencyID != nil {
		query = query.Where("agency_id = ?", *params.AgencyID)
	}

	if params.StartDate != nil {
		query = query.Where("issue_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("issue_date <= ?", *params.EndDate)
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
		Find(&issues).Error

	return issues, total, err
}

// ListAllWithDetails returns every issue with its lines, for the reconciliation diagnostic
func (r *issueRepository) ListAllWithDetails(ctx context.Context) ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.WithContext(ctx).
		Preload("Details").
		Order("created_at ASC, id ASC").
		Find(&issues).Error
	return issues, err
}

// UpdateStatusVersioned applies a status change guarded by the optimistic lock
// version. RowsAffected == 0 means another writer got there first.
func (r *issueRepository) UpdateStatusVersioned(ctx context.Context, id uuid.UUID, lockVersion int, status enum.IssueStatus, reason *string) (bool, error) {
	updates := map[string]interface{}{
		"status":       status,
		"lock_version": lockVersion + 1,
	}
	if reason != nil {
		updates["reason"] = *reason
	}

	result := r.db.WithContext(ctx).Model(&entity.Issue{}).
		Where("id = ? AND lock_version = ?", id, lockVersion).
		Updates(updates)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *issueRepository) SumTotalByStatus(ctx context.Context, status enum.IssueStatus, since *time.Time) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entity.Issue{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", status)
	if since != nil {
		query = query.Where("issue_date >= ?", *since)
	}
	err := query.Scan(&total).Error
	return total, err
}

type issueDetailRepository struct {
	db *gorm.DB
}

// NewIssueDetailRepository creates a new issue detail repository
func NewIssueDetailRepository(db *gorm.DB) domainRepo.IssueDetailRepository {
	return &issueDetailRepository{db: db}
}

func (r *issueDetailRepository) CreateBatch(ctx context.Context, details []entity.IssueDetail) error {
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *issueDetailRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]entity.IssueDetail, error) {
	var details []entity.IssueDetail
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("issue_id = ?", issueID).
		Find(&details).Error
	return details, err
}

func (r *issueDetailRepository) DeleteByIssueID(ctx context.Context, issueID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.IssueDetail{}, "issue_id = ?", issueID).Error
}
