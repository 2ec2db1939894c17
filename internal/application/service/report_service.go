package service

import (
	"context"
	"time"

	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// ReportService aggregates dashboard statistics
type ReportService struct {
	agencyRepo  repository.AgencyRepository
	itemRepo    repository.ItemRepository
	issueRepo   repository.IssueRepository
	receiptRepo repository.ReceiptRepository
}

// NewReportService creates a new report service
func NewReportService(
	agencyRepo repository.AgencyRepository,
	itemRepo repository.ItemRepository,
	issueRepo repository.IssueRepository,
	receiptRepo repository.ReceiptRepository,
) *ReportService {
	return &ReportService{
		agencyRepo:  agencyRepo,
		itemRepo:    itemRepo,
		issueRepo:   issueRepo,
		receiptRepo: receiptRepo,
	}
}

// DashboardStats holds the headline numbers for the dashboard
type DashboardStats struct {
	TotalAgencies    int64   `json:"total_agencies"`
	TotalItems       int64   `json:"total_items"`
	TotalIssues      int64   `json:"total_issues"`
	TotalReceipts    int64   `json:"total_receipts"`
	ProcessingIssues int64   `json:"processing_issues"`
	LowStockItems    int64   `json:"low_stock_items"`
	OutstandingDebt  float64 `json:"outstanding_debt"`
	TotalRevenue     float64 `json:"total_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
}

// GetDashboardStats gathers the dashboard counters concurrently
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := func() *pagination.PaginationParams {
		return &pagination.PaginationParams{Page: 1, PerPage: 1}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.agencyRepo.Count(gctx)
		stats.TotalAgencies = total
		return err
	})
	g.Go(func() error {
		_, total, err := s.itemRepo.List(gctx, &repository.ItemFilterParams{Pagination: countParams()})
		stats.TotalItems = total
		return err
	})
	g.Go(func() error {
		_, total, err := s.issueRepo.List(gctx, &repository.IssueFilterParams{Pagination: countParams()})
		stats.TotalIssues = total
		return err
	})
	g.Go(func() error {
		processing := enum.IssueStatusProcessing
		_, total, err := s.issueRepo.List(gctx, &repository.IssueFilterParams{
			Pagination: countParams(),
			Status:     &processing,
		})
		stats.ProcessingIssues = total
		return err
	})
	g.Go(func() error {
		_, total, err := s.receiptRepo.List(gctx, &repository.ReceiptFilterParams{Pagination: countParams()})
		stats.TotalReceipts = total
		return err
	})
	g.Go(func() error {
		items, err := s.itemRepo.GetLowStock(gctx)
		stats.LowStockItems = int64(len(items))
		return err
	})
	g.Go(func() error {
		debt, err := s.agencyRepo.TotalDebt(gctx)
		stats.OutstandingDebt = float64(debt) / 100
		return err
	})
	g.Go(func() error {
		revenue, err := s.issueRepo.SumTotalByStatus(gctx, enum.IssueStatusDelivered, nil)
		stats.TotalRevenue = float64(revenue) / 100
		return err
	})
	g.Go(func() error {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		revenue, err := s.issueRepo.SumTotalByStatus(gctx, enum.IssueStatusDelivered, &monthStart)
		stats.MonthlyRevenue = float64(revenue) / 100
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
