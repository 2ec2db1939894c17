package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/inventory"
	"golang.org/x/sync/errgroup"
)

// ReconciliationService compares the cached stock quantity of every item
// against the value derived from the document ledger. It is a read-only
// diagnostic: mismatches are reported, never corrected.
type ReconciliationService struct {
	itemRepo    repository.ItemRepository
	issueRepo   repository.IssueRepository
	receiptRepo repository.ReceiptRepository
	policy      inventory.LedgerPolicy
	tolerance   float64
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	itemRepo repository.ItemRepository,
	issueRepo repository.IssueRepository,
	receiptRepo repository.ReceiptRepository,
	policy inventory.LedgerPolicy,
	tolerance float64,
) *ReconciliationService {
	if tolerance <= 0 {
		tolerance = inventory.DefaultTolerance
	}
	return &ReconciliationService{
		itemRepo:    itemRepo,
		issueRepo:   issueRepo,
		receiptRepo: receiptRepo,
		policy:      policy,
		tolerance:   tolerance,
	}
}

// ReconciliationStatus classifies a single item entry of the report
type ReconciliationStatus string

const (
	ReconciliationOK       ReconciliationStatus = "ok"
	ReconciliationMismatch ReconciliationStatus = "mismatch"
)

// ReconciliationEntry is the per-item verdict of a reconciliation run
type ReconciliationEntry struct {
	ItemID        uuid.UUID            `json:"item_id"`
	ItemName      string               `json:"item_name"`
	ItemCode      string               `json:"item_code"`
	CachedStock   float64              `json:"cached_stock"`
	ExpectedStock float64              `json:"expected_stock"`
	TotalReceived float64              `json:"total_received"`
	TotalIssued   float64              `json:"total_issued"`
	Difference    float64              `json:"difference"`
	Status        ReconciliationStatus `json:"status"`
}

// ReconciliationReport is the full output of a reconciliation run. Entries
// follow item creation order, so repeated runs are directly comparable.
type ReconciliationReport struct {
	CheckedAt     time.Time             `json:"checked_at"`
	Tolerance     float64               `json:"tolerance"`
	TotalItems    int                   `json:"total_items"`
	MismatchCount int                   `json:"mismatch_count"`
	Entries       []ReconciliationEntry `json:"entries"`
}

// Consistent reports whether every item matched within tolerance
func (r *ReconciliationReport) Consistent() bool {
	return r.MismatchCount == 0
}

// Run fetches all items, issues and receipts concurrently, derives the
// expected stock of each item from the ledger and classifies the difference
// against the tolerance. Any fetch failure aborts the whole run.
func (s *ReconciliationService) Run(ctx context.Context) (*ReconciliationReport, error) {
	var (
		items    []entity.Item
		issues   []entity.Issue
		receipts []entity.Receipt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.itemRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		issues, err = s.issueRepo.ListAllWithDetails(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		receipts, err = s.receiptRepo.ListAllWithDetails(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	issueLines := s.policy.SelectIssueLines(issues)
	receiptLines := inventory.FlattenReceiptLines(receipts)

	report := &ReconciliationReport{
		CheckedAt:  time.Now(),
		Tolerance:  s.tolerance,
		TotalItems: len(items),
		Entries:    make([]ReconciliationEntry, 0, len(items)),
	}

	for _, item := range items {
		expected := inventory.ExpectedStock(item.ID, receiptLines, issueLines)
		received := inventory.TotalReceived(item.ID, receiptLines)
		issued := inventory.TotalIssued(item.ID, issueLines)
		diff := item.Quantity - expected

		status := ReconciliationOK
		if math.Abs(diff) > s.tolerance {
			status = ReconciliationMismatch
			report.MismatchCount++
		}

		report.Entries = append(report.Entries, ReconciliationEntry{
			ItemID:        item.ID,
			ItemName:      item.Name,
			ItemCode:      item.Code,
			CachedStock:   item.Quantity,
			ExpectedStock: expected,
			TotalReceived: received,
			TotalIssued:   issued,
			Difference:    diff,
			Status:        status,
		})
	}

	return report, nil
}
