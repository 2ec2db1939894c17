package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// Mock repositories for testing

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemRepository) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) ListWithCursor(ctx context.Context, params *repository.ItemCursorFilterParams) ([]entity.Item, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Item), args.Error(1)
}

func (m *MockItemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Item), args.Error(1)
}

func (m *MockItemRepository) GetLowStock(ctx context.Context) ([]entity.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockItemRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]float64) ([]uuid.UUID, error) {
	args := m.Called(ctx, decrements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockItemRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]float64) error {
	args := m.Called(ctx, increments)
	return args.Error(0)
}

type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetByIssueNo(ctx context.Context, issueNo string) (*entity.Issue, error) {
	args := m.Called(ctx, issueNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIssueRepository) List(ctx context.Context, params *repository.IssueFilterParams) ([]entity.Issue, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *MockIssueRepository) ListAllWithDetails(ctx context.Context) ([]entity.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) UpdateStatusVersioned(ctx context.Context, id uuid.UUID, lockVersion int, status enum.IssueStatus, reason *string) (bool, error) {
	args := m.Called(ctx, id, lockVersion, status, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockIssueRepository) SumTotalByStatus(ctx context.Context, status enum.IssueStatus, since *time.Time) (int64, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int64), args.Error(1)
}

type MockIssueDetailRepository struct {
	mock.Mock
}

func (m *MockIssueDetailRepository) CreateBatch(ctx context.Context, details []entity.IssueDetail) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockIssueDetailRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]entity.IssueDetail, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]entity.IssueDetail), args.Error(1)
}

func (m *MockIssueDetailRepository) DeleteByIssueID(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceiptRepository) List(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Receipt), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceiptRepository) ListAllWithDetails(ctx context.Context) ([]entity.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Receipt), args.Error(1)
}

type MockReceiptDetailRepository struct {
	mock.Mock
}

func (m *MockReceiptDetailRepository) CreateBatch(ctx context.Context, details []entity.ReceiptDetail) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockReceiptDetailRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptDetail, error) {
	args := m.Called(ctx, receiptID)
	return args.Get(0).([]entity.ReceiptDetail), args.Error(1)
}

func (m *MockReceiptDetailRepository) DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	args := m.Called(ctx, receiptID)
	return args.Error(0)
}

type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func (m *MockAgencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agency), args.Error(1)
}

func (m *MockAgencyRepository) Update(ctx context.Context, agency *entity.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func (m *MockAgencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgencyRepository) List(ctx context.Context, params *repository.AgencyFilterParams) ([]entity.Agency, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Agency), args.Get(1).(int64), args.Error(2)
}

func (m *MockAgencyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAgencyRepository) AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockAgencyRepository) TotalDebt(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
