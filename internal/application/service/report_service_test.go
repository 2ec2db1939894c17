package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	agencyRepo := new(MockAgencyRepository)
	itemRepo := new(MockItemRepository)
	issueRepo := new(MockIssueRepository)
	receiptRepo := new(MockReceiptRepository)

	agencyRepo.On("Count", mock.Anything).Return(int64(4), nil)
	agencyRepo.On("TotalDebt", mock.Anything).Return(int64(150_000_00), nil)

	itemRepo.On("List", mock.Anything, mock.Anything).
		Return([]entity.Item{}, int64(12), nil)
	itemRepo.On("GetLowStock", mock.Anything).
		Return([]entity.Item{{Name: "Rice 5kg"}, {Name: "Sugar"}}, nil)

	issueRepo.On("List", mock.Anything, mock.MatchedBy(func(p *repository.IssueFilterParams) bool {
		return p.Status == nil
	})).Return([]entity.Issue{}, int64(9), nil)
	issueRepo.On("List", mock.Anything, mock.MatchedBy(func(p *repository.IssueFilterParams) bool {
		return p.Status != nil && *p.Status == enum.IssueStatusProcessing
	})).Return([]entity.Issue{}, int64(3), nil)
	issueRepo.On("SumTotalByStatus", mock.Anything, enum.IssueStatusDelivered, (*time.Time)(nil)).
		Return(int64(500_000_00), nil)
	issueRepo.On("SumTotalByStatus", mock.Anything, enum.IssueStatusDelivered, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Day() == 1
	})).Return(int64(120_000_00), nil)

	receiptRepo.On("List", mock.Anything, mock.Anything).
		Return([]entity.Receipt{}, int64(7), nil)

	svc := NewReportService(agencyRepo, itemRepo, issueRepo, receiptRepo)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, stats.TotalAgencies)
	require.EqualValues(t, 12, stats.TotalItems)
	require.EqualValues(t, 9, stats.TotalIssues)
	require.EqualValues(t, 3, stats.ProcessingIssues)
	require.EqualValues(t, 7, stats.TotalReceipts)
	require.EqualValues(t, 2, stats.LowStockItems)
	require.InDelta(t, 150_000.0, stats.OutstandingDebt, 1e-9)
	require.InDelta(t, 500_000.0, stats.TotalRevenue, 1e-9)
	require.InDelta(t, 120_000.0, stats.MonthlyRevenue, 1e-9)
}

func TestGetDashboardStatsAbortsOnFetchFailure(t *testing.T) {
	agencyRepo := new(MockAgencyRepository)
	itemRepo := new(MockItemRepository)
	issueRepo := new(MockIssueRepository)
	receiptRepo := new(MockReceiptRepository)

	fetchErr := errors.New("connection refused")
	agencyRepo.On("Count", mock.Anything).Return(int64(0), fetchErr)
	agencyRepo.On("TotalDebt", mock.Anything).Return(int64(0), nil).Maybe()
	itemRepo.On("List", mock.Anything, mock.Anything).Return([]entity.Item{}, int64(0), nil).Maybe()
	itemRepo.On("GetLowStock", mock.Anything).Return([]entity.Item{}, nil).Maybe()
	issueRepo.On("List", mock.Anything, mock.Anything).Return([]entity.Issue{}, int64(0), nil).Maybe()
	issueRepo.On("SumTotalByStatus", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	receiptRepo.On("List", mock.Anything, mock.Anything).Return([]entity.Receipt{}, int64(0), nil).Maybe()

	svc := NewReportService(agencyRepo, itemRepo, issueRepo, receiptRepo)

	stats, err := svc.GetDashboardStats(context.Background())
	require.Error(t, err)
	require.Nil(t, stats)
}
