package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type issueFixture struct {
	svc         *IssueService
	issueRepo   *MockIssueRepository
	detailRepo  *MockIssueDetailRepository
	itemRepo    *MockItemRepository
	agencyRepo  *MockAgencyRepository
	broadcaster *inventory.Broadcaster
}

func newIssueFixture() *issueFixture {
	issueRepo := new(MockIssueRepository)
	detailRepo := new(MockIssueDetailRepository)
	itemRepo := new(MockItemRepository)
	agencyRepo := new(MockAgencyRepository)
	broadcaster := inventory.NewBroadcaster()

	return &issueFixture{
		svc:         NewIssueService(issueRepo, detailRepo, itemRepo, agencyRepo, broadcaster),
		issueRepo:   issueRepo,
		detailRepo:  detailRepo,
		itemRepo:    itemRepo,
		agencyRepo:  agencyRepo,
		broadcaster: broadcaster,
	}
}

func processingIssue(agency *entity.Agency, details ...entity.IssueDetail) *entity.Issue {
	return &entity.Issue{
		ID:          uuid.New(),
		AgencyID:    agency.ID,
		IssueNo:     "ISS-20250901-TEST0001",
		Status:      enum.IssueStatusProcessing,
		LockVersion: 1,
		Total:       100_00,
		Agency:      agency,
		Details:     details,
	}
}

func testAgency(debt, maxDebt int64) *entity.Agency {
	return &entity.Agency{
		ID:   uuid.New(),
		Name: "Agency A",
		Debt: debt,
		Type: &entity.AgencyType{ID: uuid.New(), Name: "Level 1", MaxDebt: maxDebt},
	}
}

func TestCheckStockSufficient(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 15}, nil)

	result, err := f.svc.CheckStock(context.Background(), issue.ID)
	require.NoError(t, err)
	require.True(t, result.Sufficient())
	require.Len(t, result.Items, 1)
	require.Equal(t, StockSufficient, result.Items[0].Status)
	require.InDelta(t, 15.0, result.Items[0].Available, 1e-9)
	require.InDelta(t, 10.0, result.Items[0].Requested, 1e-9)
}

func TestCheckStockExactQuantityIsSufficient(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 10}, nil)

	result, err := f.svc.CheckStock(context.Background(), issue.ID)
	require.NoError(t, err)
	require.True(t, result.Sufficient())
}

func TestCheckStockOneShortLineFailsOverall(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	okID := uuid.New()
	shortID := uuid.New()
	issue := processingIssue(agency,
		entity.IssueDetail{ItemID: okID, Quantity: 5},
		entity.IssueDetail{ItemID: shortID, Quantity: 20},
	)

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, okID).
		Return(&entity.Item{ID: okID, Name: "Rice 5kg", Quantity: 100}, nil)
	f.itemRepo.On("GetByID", mock.Anything, shortID).
		Return(&entity.Item{ID: shortID, Name: "Sugar 1kg", Quantity: 19.5}, nil)

	result, err := f.svc.CheckStock(context.Background(), issue.ID)
	require.NoError(t, err)
	require.False(t, result.Sufficient())
	require.Equal(t, StockInsufficient, result.OverallStatus)

	// Per-line verdicts are preserved so the UI can highlight the short rows.
	byItem := map[uuid.UUID]StockLineStatus{}
	for _, line := range result.Items {
		byItem[line.ItemID] = line.Status
	}
	require.Equal(t, StockSufficient, byItem[okID])
	require.Equal(t, StockInsufficient, byItem[shortID])
}

func TestCheckStockEmptyIssueIsAnError(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency)

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)

	result, err := f.svc.CheckStock(context.Background(), issue.ID)
	require.Nil(t, result)
	require.ErrorIs(t, err, apperror.ErrEmptyDocument)
	require.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCheckStockIssueNotFound(t *testing.T) {
	f := newIssueFixture()
	id := uuid.New()

	f.issueRepo.On("GetWithDetails", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.CheckStock(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestConfirmIssueDecrementsStockAndBumpsOnce(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 10_000_00)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 50}, nil)
	f.itemRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return([]uuid.UUID{}, nil)
	f.issueRepo.On("UpdateStatusVersioned", mock.Anything, issue.ID, 1, enum.IssueStatusConfirmed, (*string)(nil)).
		Return(true, nil)
	f.agencyRepo.On("AdjustDebt", mock.Anything, agency.ID, issue.Total).Return(nil)

	before := f.broadcaster.Version()

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, before+1, f.broadcaster.Version())

	f.itemRepo.AssertExpectations(t)
	f.issueRepo.AssertExpectations(t)
	f.agencyRepo.AssertExpectations(t)
}

func TestConfirmIssueInsufficientStockFailsWithoutBump(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 3}, nil)

	before := f.broadcaster.Version()

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
	require.Equal(t, before, f.broadcaster.Version())

	f.itemRepo.AssertNotCalled(t, "AtomicDecrementBatch", mock.Anything, mock.Anything)
}

func TestConfirmIssueDebtCeilingBlocks(t *testing.T) {
	f := newIssueFixture()
	// Debt 950 plus issue total 100 would cross the 1000 ceiling.
	agency := testAgency(950_00, 1_000_00)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 1})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 50}, nil)

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)

	f.itemRepo.AssertNotCalled(t, "AtomicDecrementBatch", mock.Anything, mock.Anything)
	f.agencyRepo.AssertNotCalled(t, "AdjustDebt", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmIssueConcurrentModificationRollsBack(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 10_000_00)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 50}, nil)
	f.itemRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return([]uuid.UUID{}, nil)
	f.agencyRepo.On("AdjustDebt", mock.Anything, agency.ID, issue.Total).Return(nil)
	// Another request already moved the lock version.
	f.issueRepo.On("UpdateStatusVersioned", mock.Anything, issue.ID, 1, enum.IssueStatusConfirmed, (*string)(nil)).
		Return(false, nil)
	f.agencyRepo.On("AdjustDebt", mock.Anything, agency.ID, -issue.Total).Return(nil)
	f.itemRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return(nil)

	before := f.broadcaster.Version()

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.ErrorIs(t, err, apperror.ErrConcurrentModification)
	require.Equal(t, 409, apperror.GetAppError(err).Code)
	require.Equal(t, before, f.broadcaster.Version())

	// Both the decrement and the debt raise were undone.
	f.itemRepo.AssertCalled(t, "AtomicIncrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10})
	f.agencyRepo.AssertCalled(t, "AdjustDebt", mock.Anything, agency.ID, -issue.Total)
}

func TestConfirmIssueDebtFailureRestoresStock(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 10_000_00)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 50}, nil)
	f.itemRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return([]uuid.UUID{}, nil)
	f.agencyRepo.On("AdjustDebt", mock.Anything, agency.ID, issue.Total).
		Return(apperror.ErrInternalServer)
	f.itemRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return(nil)

	before := f.broadcaster.Version()

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, before, f.broadcaster.Version())

	// The stock movement was undone and the issue stays in processing, so
	// the operator can retry the confirm.
	f.itemRepo.AssertCalled(t, "AtomicIncrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10})
	f.issueRepo.AssertNotCalled(t, "UpdateStatusVersioned",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmIssueRaceLostAtDecrement(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 10_000_00)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{
		ItemID: itemID, Quantity: 10,
		Item: entity.Item{ID: itemID, Name: "Rice 5kg"},
	})

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	// Check passes, but stock moves before the decrement lands.
	f.itemRepo.On("GetByID", mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Rice 5kg", Quantity: 50}, nil)
	f.itemRepo.On("AtomicDecrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).
		Return([]uuid.UUID{itemID}, nil)

	before := f.broadcaster.Version()

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
	require.Equal(t, before, f.broadcaster.Version())
}

func TestConfirmIssueWrongStatus(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency, entity.IssueDetail{ItemID: uuid.New(), Quantity: 1})
	issue.Status = enum.IssueStatusDelivered

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)

	_, err := f.svc.ConfirmIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeliverIssueDoesNotBump(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency)
	issue.Status = enum.IssueStatusConfirmed
	issue.LockVersion = 2

	f.issueRepo.On("GetByID", mock.Anything, issue.ID).Return(issue, nil)
	f.issueRepo.On("UpdateStatusVersioned", mock.Anything, issue.ID, 2, enum.IssueStatusDelivered, (*string)(nil)).
		Return(true, nil)
	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)

	before := f.broadcaster.Version()

	_, err := f.svc.DeliverIssue(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, before, f.broadcaster.Version())
}

func TestPostponeIssueRecordsReason(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency)

	reason := "Agency requested a later delivery window"
	f.issueRepo.On("GetByID", mock.Anything, issue.ID).Return(issue, nil)
	f.issueRepo.On("UpdateStatusVersioned", mock.Anything, issue.ID, 1, enum.IssueStatusPostponed, &reason).
		Return(true, nil)
	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)

	_, err := f.svc.PostponeIssue(context.Background(), issue.ID, reason)
	require.NoError(t, err)
	f.issueRepo.AssertExpectations(t)
}

func TestPostponeDeliveredIssueRejected(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency)
	issue.Status = enum.IssueStatusDelivered

	f.issueRepo.On("GetByID", mock.Anything, issue.ID).Return(issue, nil)

	_, err := f.svc.PostponeIssue(context.Background(), issue.ID, "too late")
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteConfirmedIssueRestoresStockAndDebt(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(100_00, 0)
	itemID := uuid.New()
	issue := processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 10})
	issue.Status = enum.IssueStatusConfirmed

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)
	f.itemRepo.On("AtomicIncrementBatch", mock.Anything, map[uuid.UUID]float64{itemID: 10}).Return(nil)
	f.agencyRepo.On("AdjustDebt", mock.Anything, agency.ID, -issue.Total).Return(nil)
	f.detailRepo.On("DeleteByIssueID", mock.Anything, issue.ID).Return(nil)
	f.issueRepo.On("Delete", mock.Anything, issue.ID).Return(nil)

	before := f.broadcaster.Version()

	err := f.svc.DeleteIssue(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, before+1, f.broadcaster.Version())

	f.itemRepo.AssertExpectations(t)
	f.agencyRepo.AssertExpectations(t)
}

func TestDeleteDeliveredIssueRejected(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	issue := processingIssue(agency)
	issue.Status = enum.IssueStatusDelivered

	f.issueRepo.On("GetWithDetails", mock.Anything, issue.ID).Return(issue, nil)

	err := f.svc.DeleteIssue(context.Background(), issue.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
	f.issueRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateIssueEmptyLinesRejected(t *testing.T) {
	f := newIssueFixture()

	_, err := f.svc.CreateIssue(context.Background(), &CreateIssueInput{
		AgencyID: uuid.New(),
		Items:    nil,
	})
	require.ErrorIs(t, err, apperror.ErrEmptyDocument)
}

func TestCreateIssueBumpsVersion(t *testing.T) {
	f := newIssueFixture()
	agency := testAgency(0, 0)
	itemID := uuid.New()

	f.agencyRepo.On("GetByID", mock.Anything, agency.ID).Return(agency, nil)
	f.itemRepo.On("GetByIDs", mock.Anything, []uuid.UUID{itemID}).
		Return([]entity.Item{{ID: itemID, Name: "Rice 5kg", UnitPrice: 10_00}}, nil)
	f.issueRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Issue")).Return(nil)
	f.detailRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]entity.IssueDetail")).Return(nil)
	f.issueRepo.On("GetWithDetails", mock.Anything, mock.Anything).
		Return(processingIssue(agency, entity.IssueDetail{ItemID: itemID, Quantity: 3}), nil)

	before := f.broadcaster.Version()

	_, err := f.svc.CreateIssue(context.Background(), &CreateIssueInput{
		AgencyID: agency.ID,
		Items:    []IssueLineInput{{ItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, before+1, f.broadcaster.Version())
}
