package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// PaymentService handles payment collection against agency debt
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	agencyRepo  repository.AgencyRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, agencyRepo repository.AgencyRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		agencyRepo:  agencyRepo,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	AgencyID    uuid.UUID
	Amount      float64
	PaymentDate *time.Time
	Notes       *string
}

// CreatePayment records a payment and reduces the agency's outstanding debt
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}

	agency, err := s.agencyRepo.GetByID(ctx, input.AgencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, apperror.NewNotFoundError("Agency")
	}

	amountCents := int64(input.Amount * 100)
	if amountCents > agency.Debt {
		return nil, apperror.NewBadRequestError("Payment amount exceeds the agency's outstanding debt")
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := &entity.Payment{
		AgencyID:    input.AgencyID,
		PaymentNo:   generateDocumentNo("PAY"),
		PaymentDate: paymentDate,
		Amount:      amountCents,
		Notes:       input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.agencyRepo.AdjustDebt(ctx, input.AgencyID, -amountCents); err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(ctx, payment.ID)
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// DeletePayment removes a payment and restores the agency's debt
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.agencyRepo.AdjustDebt(ctx, payment.AgencyID, payment.Amount)
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// generateDocumentNo produces a short human-readable document number
func generateDocumentNo(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
