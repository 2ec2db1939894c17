package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// IssueRepository defines the interface for issue data operations
type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Issue, error)
	GetByIssueNo(ctx context.Context, issueNo string) (*entity.Issue, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Issue, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *IssueFilterParams) ([]entity.Issue, int64, error)
	// ListAllWithDetails returns every issue with its lines, for the
	// reconciliation diagnostic.
	ListAllWithDetails(ctx context.Context) ([]entity.Issue, error)
	// UpdateStatusVersioned applies a status change only if the stored lock
	// version still matches lockVersion, incrementing it on success. Returns
	// false when the row was modified concurrently (no rows matched).
	UpdateStatusVersioned(ctx context.Context, id uuid.UUID, lockVersion int, status enum.IssueStatus, reason *string) (bool, error)
	// SumTotalByStatus returns the summed total (in cents) of issues in the
	// given status, optionally restricted to issues dated on or after since.
	SumTotalByStatus(ctx context.Context, status enum.IssueStatus, since *time.Time) (int64, error)
}

// IssueFilterParams contains filtering parameters for issue queries
type IssueFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.IssueStatus
	AgencyID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// IssueDetailRepository defines the interface for issue detail data operations
type IssueDetailRepository interface {
	CreateBatch(ctx context.Context, details []entity.IssueDetail) error
	GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]entity.IssueDetail, error)
	DeleteByIssueID(ctx context.Context, issueID uuid.UUID) error
}
