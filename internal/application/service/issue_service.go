package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/ndtduy/agency-api/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// IssueService handles export issues and their status lifecycle. Stock only
// leaves the warehouse at confirmation time, guarded by a sufficiency check,
// the agency's debt ceiling and an optimistic lock on the issue row.
type IssueService struct {
	issueRepo       repository.IssueRepository
	issueDetailRepo repository.IssueDetailRepository
	itemRepo        repository.ItemRepository
	agencyRepo      repository.AgencyRepository
	broadcaster     *inventory.Broadcaster
}

// NewIssueService creates a new issue service
func NewIssueService(
	issueRepo repository.IssueRepository,
	issueDetailRepo repository.IssueDetailRepository,
	itemRepo repository.ItemRepository,
	agencyRepo repository.AgencyRepository,
	broadcaster *inventory.Broadcaster,
) *IssueService {
	return &IssueService{
		issueRepo:       issueRepo,
		issueDetailRepo: issueDetailRepo,
		itemRepo:        itemRepo,
		agencyRepo:      agencyRepo,
		broadcaster:     broadcaster,
	}
}

// IssueLineInput represents one line of an issue
type IssueLineInput struct {
	ItemID    uuid.UUID
	Quantity  float64
	UnitPrice float64
}

// CreateIssueInput represents the create issue input
type CreateIssueInput struct {
	AgencyID  uuid.UUID
	IssueDate *time.Time
	Items     []IssueLineInput
}

// CreateIssue creates a new issue in processing status. No stock moves yet;
// the decrement happens at confirmation.
func (s *IssueService) CreateIssue(ctx context.Context, input *CreateIssueInput) (*entity.Issue, error) {
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

	issueDate := time.Now()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}

	var total int64
	details := make([]entity.IssueDetail, 0, len(input.Items))
	for _, line := range input.Items {
		unitPrice := int64(line.UnitPrice * 100)
		if line.UnitPrice == 0 {
			unitPrice = itemsByID[line.ItemID].UnitPrice
		}
		lineTotal := int64(float64(unitPrice) * line.Quantity)

		details = append(details, entity.IssueDetail{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
		total += lineTotal
	}

	issue := &entity.Issue{
		AgencyID:   input.AgencyID,
		IssueNo:    generateDocumentNo("ISS"),
		IssueDate:  issueDate,
		Status:     enum.IssueStatusProcessing,
		TotalItems: len(input.Items),
		Total:      total,
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}

	for i := range details {
		details[i].IssueID = issue.ID
	}
	if err := s.issueDetailRepo.CreateBatch(ctx, details); err != nil {
		_ = s.issueRepo.Delete(ctx, issue.ID)
		return nil, err
	}

	s.broadcaster.Bump()
	return s.issueRepo.GetWithDetails(ctx, issue.ID)
}

// GetIssue retrieves an issue with its lines
func (s *IssueService) GetIssue(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	issue, err := s.issueRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apperror.NewNotFoundError("Issue")
	}
	return issue, nil
}

// ListIssues lists issues with filtering
func (s *IssueService) ListIssues(ctx context.Context, params *repository.IssueFilterParams) (*pagination.PaginatedResult[entity.Issue], error) {
	issues, total, err := s.issueRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(issues, pag), nil
}

// StockLineStatus classifies a single line of a stock check
type StockLineStatus string

const (
	StockSufficient   StockLineStatus = "sufficient"
	StockInsufficient StockLineStatus = "insufficient"
)

// StockCheckLine is the per-item verdict of a stock check
type StockCheckLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Requested float64         `json:"requested"`
	Available float64         `json:"available"`
	Status    StockLineStatus `json:"status"`
}

// StockCheckResult is the full verdict of a stock check against an issue
type StockCheckResult struct {
	IssueID       uuid.UUID        `json:"issue_id"`
	IssueNo       string           `json:"issue_no"`
	Items         []StockCheckLine `json:"items"`
	OverallStatus StockLineStatus  `json:"overall_status"`
}

// Sufficient reports whether every line can be served from current stock
func (r *StockCheckResult) Sufficient() bool {
	return r.OverallStatus == StockSufficient
}

// CheckStock evaluates whether current stock can serve every line of the
// issue. Read-only: no stock moves and the inventory version is untouched.
func (s *IssueService) CheckStock(ctx context.Context, issueID uuid.UUID) (*StockCheckResult, error) {
	issue, err := s.issueRepo.GetWithDetails(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apperror.NewNotFoundError("Issue")
	}
	return s.evaluateStock(ctx, issue)
}

// evaluateStock fetches current quantities for every line concurrently and
// classifies each line. An issue with no lines is a hard error, not an
// empty-and-therefore-sufficient result.
func (s *IssueService) evaluateStock(ctx context.Context, issue *entity.Issue) (*StockCheckResult, error) {
	if len(issue.Details) == 0 {
		return nil, apperror.ErrEmptyDocument
	}

	lines := make([]StockCheckLine, len(issue.Details))

	g, gctx := errgroup.WithContext(ctx)
	for i, detail := range issue.Details {
		i, detail := i, detail
		g.Go(func() error {
			item, err := s.itemRepo.GetByID(gctx, detail.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return apperror.NewNotFoundError(fmt.Sprintf("Item %s", detail.ItemID))
			}

			status := StockSufficient
			if item.Quantity < detail.Quantity {
				status = StockInsufficient
			}
			lines[i] = StockCheckLine{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: detail.Quantity,
				Available: item.Quantity,
				Status:    status,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overall := StockSufficient
	for _, line := range lines {
		if line.Status == StockInsufficient {
			overall = StockInsufficient
			break
		}
	}

	return &StockCheckResult{
		IssueID:       issue.ID,
		IssueNo:       issue.IssueNo,
		Items:         lines,
		OverallStatus: overall,
	}, nil
}

// ConfirmIssue transitions an issue from processing to confirmed: it
// re-checks sufficiency, enforces the agency's debt ceiling, decrements
// stock atomically and raises the agency's debt. The versioned status
// write commits the transition; a concurrent confirm of the same issue
// loses with a 409 and its stock and debt movements are rolled back.
func (s *IssueService) ConfirmIssue(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	issue, err := s.issueRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apperror.NewNotFoundError("Issue")
	}
	if !issue.Status.CanTransitionTo(enum.IssueStatusConfirmed) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot confirm an issue in %s status", issue.Status))
	}

	check, err := s.evaluateStock(ctx, issue)
	if err != nil {
		return nil, err
	}
	if !check.Sufficient() {
		return nil, apperror.NewBadRequestError(
			"Insufficient stock for: " + strings.Join(insufficientNames(check), ", "))
	}

	if issue.Agency != nil && issue.Agency.Type != nil && issue.Agency.Type.MaxDebt > 0 {
		if issue.Agency.Debt+issue.Total > issue.Agency.Type.MaxDebt {
			return nil, apperror.NewBadRequestError("Confirming this issue would exceed the agency's debt limit")
		}
	}

	decrements := make(map[uuid.UUID]float64, len(issue.Details))
	for _, detail := range issue.Details {
		decrements[detail.ItemID] += detail.Quantity
	}

	failedIDs, err := s.itemRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		// Stock moved between the check and the decrement; the batch rolled back.
		return nil, apperror.NewBadRequestError(
			"Insufficient stock for: " + strings.Join(detailNamesForIDs(issue.Details, failedIDs), ", "))
	}

	if err := s.agencyRepo.AdjustDebt(ctx, issue.AgencyID, issue.Total); err != nil {
		_ = s.itemRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	// The versioned status write is the commit point: anything that fails
	// from here on reverts both the stock movement and the debt raise, so a
	// failed confirm never leaves a half-applied issue behind.
	ok, err := s.issueRepo.UpdateStatusVersioned(ctx, id, issue.LockVersion, enum.IssueStatusConfirmed, nil)
	if err != nil {
		_ = s.agencyRepo.AdjustDebt(ctx, issue.AgencyID, -issue.Total)
		_ = s.itemRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}
	if !ok {
		_ = s.agencyRepo.AdjustDebt(ctx, issue.AgencyID, -issue.Total)
		_ = s.itemRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, apperror.ErrConcurrentModification
	}

	s.broadcaster.Bump()
	return s.issueRepo.GetWithDetails(ctx, id)
}

// DeliverIssue transitions a confirmed issue to delivered. Stock already
// moved at confirmation, so the inventory version is untouched.
func (s *IssueService) DeliverIssue(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apperror.NewNotFoundError("Issue")
	}
	if !issue.Status.CanTransitionTo(enum.IssueStatusDelivered) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot deliver an issue in %s status", issue.Status))
	}

	ok, err := s.issueRepo.UpdateStatusVersioned(ctx, id, issue.LockVersion, enum.IssueStatusDelivered, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrConcurrentModification
	}

	return s.issueRepo.GetWithDetails(ctx, id)
}

// PostponeIssue transitions a processing issue to postponed, recording the
// reason. Postponed is terminal.
func (s *IssueService) PostponeIssue(ctx context.Context, id uuid.UUID, reason string) (*entity.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apperror.NewNotFoundError("Issue")
	}
	if !issue.Status.CanTransitionTo(enum.IssueStatusPostponed) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot postpone an issue in %s status", issue.Status))
	}

	ok, err := s.issueRepo.UpdateStatusVersioned(ctx, id, issue.LockVersion, enum.IssueStatusPostponed, &reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrConcurrentModification
	}

	return s.issueRepo.GetWithDetails(ctx, id)
}

// DeleteIssue removes an issue. Confirmed issues give their stock back and
// reverse the debt they raised; delivered issues cannot be deleted.
func (s *IssueService) DeleteIssue(ctx context.Context, id uuid.UUID) error {
	issue, err := s.issueRepo.GetWithDetails(ctx, id)
	if err != nil {
		return err
	}
	if issue == nil {
		return apperror.NewNotFoundError("Issue")
	}
	if issue.Status == enum.IssueStatusDelivered {
		return apperror.NewBadRequestError("Cannot delete a delivered issue")
	}

	if issue.Status == enum.IssueStatusConfirmed {
		increments := make(map[uuid.UUID]float64, len(issue.Details))
		for _, detail := range issue.Details {
			increments[detail.ItemID] += detail.Quantity
		}
		if err := s.itemRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return err
		}
		if err := s.agencyRepo.AdjustDebt(ctx, issue.AgencyID, -issue.Total); err != nil {
			return err
		}
	}

	if err := s.issueDetailRepo.DeleteByIssueID(ctx, id); err != nil {
		return err
	}
	if err := s.issueRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.Bump()
	return nil
}

func insufficientNames(check *StockCheckResult) []string {
	var names []string
	for _, line := range check.Items {
		if line.Status == StockInsufficient {
			names = append(names, line.ItemName)
		}
	}
	return names
}

func detailNamesForIDs(details []entity.IssueDetail, ids []uuid.UUID) []string {
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
