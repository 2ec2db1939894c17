package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconciliationFixture(items []entity.Item, issues []entity.Issue, receipts []entity.Receipt) (*ReconciliationService, *MockItemRepository, *MockIssueRepository, *MockReceiptRepository) {
	itemRepo := new(MockItemRepository)
	issueRepo := new(MockIssueRepository)
	receiptRepo := new(MockReceiptRepository)

	itemRepo.On("ListAll", mock.Anything).Return(items, nil)
	issueRepo.On("ListAllWithDetails", mock.Anything).Return(issues, nil)
	receiptRepo.On("ListAllWithDetails", mock.Anything).Return(receipts, nil)

	svc := NewReconciliationService(itemRepo, issueRepo, receiptRepo, inventory.DefaultLedgerPolicy(), 0.01)
	return svc, itemRepo, issueRepo, receiptRepo
}

func TestReconciliationAllConsistent(t *testing.T) {
	itemID := uuid.New()

	items := []entity.Item{{ID: itemID, Name: "Rice 5kg", Code: "RICE-5", Quantity: 70}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 100}}}}
	issues := []entity.Issue{{Status: enum.IssueStatusConfirmed, Details: []entity.IssueDetail{{ItemID: itemID, Quantity: 30}}}}

	svc, _, _, _ := newReconciliationFixture(items, issues, receipts)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Consistent())
	require.Equal(t, 0, report.MismatchCount)
	require.Len(t, report.Entries, 1)
	require.Equal(t, ReconciliationOK, report.Entries[0].Status)
	require.InDelta(t, 70.0, report.Entries[0].ExpectedStock, 1e-9)
	require.InDelta(t, 100.0, report.Entries[0].TotalReceived, 1e-9)
	require.InDelta(t, 30.0, report.Entries[0].TotalIssued, 1e-9)
}

func TestReconciliationDetectsMismatch(t *testing.T) {
	itemID := uuid.New()

	// Cached 75, ledger says 70: off by 5.
	items := []entity.Item{{ID: itemID, Name: "Rice 5kg", Code: "RICE-5", Quantity: 75}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 100}}}}
	issues := []entity.Issue{{Status: enum.IssueStatusConfirmed, Details: []entity.IssueDetail{{ItemID: itemID, Quantity: 30}}}}

	svc, _, _, _ := newReconciliationFixture(items, issues, receipts)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.Consistent())
	require.Equal(t, 1, report.MismatchCount)
	require.Equal(t, ReconciliationMismatch, report.Entries[0].Status)
	require.InDelta(t, 5.0, report.Entries[0].Difference, 1e-9)
}

func TestReconciliationToleranceAbsorbsFloatNoise(t *testing.T) {
	itemID := uuid.New()

	// Off by 0.005, inside the 0.01 tolerance.
	items := []entity.Item{{ID: itemID, Name: "Sugar", Code: "SUG-1", Quantity: 10.005}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 10}}}}

	svc, _, _, _ := newReconciliationFixture(items, nil, receipts)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Consistent())
	require.Equal(t, ReconciliationOK, report.Entries[0].Status)
}

func TestReconciliationJustOverToleranceIsMismatch(t *testing.T) {
	itemID := uuid.New()

	// Off by 0.02, just past the 0.01 tolerance.
	items := []entity.Item{{ID: itemID, Name: "Sugar", Code: "SUG-1", Quantity: 10.02}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 10}}}}

	svc, _, _, _ := newReconciliationFixture(items, nil, receipts)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.Consistent())
	require.Equal(t, 1, report.MismatchCount)
	require.Equal(t, ReconciliationMismatch, report.Entries[0].Status)
}

func TestReconciliationItemWithNoDocumentsExpectsZero(t *testing.T) {
	itemID := uuid.New()

	items := []entity.Item{{ID: itemID, Name: "New item", Code: "NEW-1", Quantity: 0}}

	svc, _, _, _ := newReconciliationFixture(items, nil, nil)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Consistent())
	require.Zero(t, report.Entries[0].ExpectedStock)
}

func TestReconciliationDefaultPolicyCountsAllStatuses(t *testing.T) {
	itemID := uuid.New()

	// 100 received; a processing issue of 30 never decremented the cached
	// quantity, so the default all-statuses ledger flags this as a mismatch.
	items := []entity.Item{{ID: itemID, Name: "Rice 5kg", Code: "RICE-5", Quantity: 100}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 100}}}}
	issues := []entity.Issue{{Status: enum.IssueStatusProcessing, Details: []entity.IssueDetail{{ItemID: itemID, Quantity: 30}}}}

	svc, _, _, _ := newReconciliationFixture(items, issues, receipts)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.Consistent())
	require.InDelta(t, 70.0, report.Entries[0].ExpectedStock, 1e-9)
}

func TestReconciliationConfirmedOnlyPolicyIgnoresProcessing(t *testing.T) {
	itemID := uuid.New()

	items := []entity.Item{{ID: itemID, Name: "Rice 5kg", Code: "RICE-5", Quantity: 100}}
	receipts := []entity.Receipt{{Details: []entity.ReceiptDetail{{ItemID: itemID, Quantity: 100}}}}
	issues := []entity.Issue{{Status: enum.IssueStatusProcessing, Details: []entity.IssueDetail{{ItemID: itemID, Quantity: 30}}}}

	itemRepo := new(MockItemRepository)
	issueRepo := new(MockIssueRepository)
	receiptRepo := new(MockReceiptRepository)
	itemRepo.On("ListAll", mock.Anything).Return(items, nil)
	issueRepo.On("ListAllWithDetails", mock.Anything).Return(issues, nil)
	receiptRepo.On("ListAllWithDetails", mock.Anything).Return(receipts, nil)

	svc := NewReconciliationService(itemRepo, issueRepo, receiptRepo, inventory.ConfirmedOnlyLedgerPolicy(), 0.01)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Consistent())
	require.InDelta(t, 100.0, report.Entries[0].ExpectedStock, 1e-9)
}

func TestReconciliationPreservesItemOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	items := []entity.Item{
		{ID: first, Name: "A", Code: "A"},
		{ID: second, Name: "B", Code: "B"},
		{ID: third, Name: "C", Code: "C"},
	}

	svc, _, _, _ := newReconciliationFixture(items, nil, nil)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{first, second, third}, []uuid.UUID{
		report.Entries[0].ItemID,
		report.Entries[1].ItemID,
		report.Entries[2].ItemID,
	})
}

func TestReconciliationAbortsOnFetchFailure(t *testing.T) {
	itemRepo := new(MockItemRepository)
	issueRepo := new(MockIssueRepository)
	receiptRepo := new(MockReceiptRepository)

	fetchErr := errors.New("connection refused")
	itemRepo.On("ListAll", mock.Anything).Return(nil, fetchErr)
	issueRepo.On("ListAllWithDetails", mock.Anything).Return([]entity.Issue{}, nil).Maybe()
	receiptRepo.On("ListAllWithDetails", mock.Anything).Return([]entity.Receipt{}, nil).Maybe()

	svc := NewReconciliationService(itemRepo, issueRepo, receiptRepo, inventory.DefaultLedgerPolicy(), 0.01)

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Nil(t, report)
}

func TestReconciliationIsReadOnly(t *testing.T) {
	itemID := uuid.New()
	items := []entity.Item{{ID: itemID, Name: "Rice 5kg", Code: "RICE-5", Quantity: 42}}

	svc, itemRepo, issueRepo, receiptRepo := newReconciliationFixture(items, nil, nil)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Only the three list calls may have happened; no writes.
	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	itemRepo.AssertExpectations(t)
	issueRepo.AssertExpectations(t)
	receiptRepo.AssertExpectations(t)
}
