package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/pkg/apperror"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// AgencyService handles agency-related operations
type AgencyService struct {
	agencyRepo     repository.AgencyRepository
	agencyTypeRepo repository.AgencyTypeRepository
}

// NewAgencyService creates a new agency service
func NewAgencyService(agencyRepo repository.AgencyRepository, agencyTypeRepo repository.AgencyTypeRepository) *AgencyService {
	return &AgencyService{
		agencyRepo:     agencyRepo,
		agencyTypeRepo: agencyTypeRepo,
	}
}

// CreateAgencyInput represents the create agency input
type CreateAgencyInput struct {
	Name          string
	TypeID        *uuid.UUID
	District      string
	Phone         *string
	Email         *string
	Address       *string
	ReceptionDate *time.Time
}

// CreateAgency creates a new agency
func (s *AgencyService) CreateAgency(ctx context.Context, input *CreateAgencyInput) (*entity.Agency, error) {
	if input.TypeID != nil {
		agencyType, err := s.agencyTypeRepo.GetByID(ctx, *input.TypeID)
		if err != nil {
			return nil, err
		}
		if agencyType == nil {
			return nil, apperror.NewNotFoundError("Agency type")
		}
	}

	receptionDate := time.Now()
	if input.ReceptionDate != nil {
		receptionDate = *input.ReceptionDate
	}

	agency := &entity.Agency{
		Name:          input.Name,
		TypeID:        input.TypeID,
		District:      input.District,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		ReceptionDate: receptionDate,
	}

	if err := s.agencyRepo.Create(ctx, agency); err != nil {
		return nil, err
	}
	return s.agencyRepo.GetByID(ctx, agency.ID)
}

// GetAgency retrieves an agency by ID
func (s *AgencyService) GetAgency(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, apperror.NewNotFoundError("Agency")
	}
	return agency, nil
}

// UpdateAgencyInput represents the update agency input
type UpdateAgencyInput struct {
	Name     *string
	TypeID   *uuid.UUID
	District *string
	Phone    *string
	Email    *string
	Address  *string
}

// UpdateAgency updates an agency. Debt is never set directly: it only
// moves through issue confirmation and payments.
func (s *AgencyService) UpdateAgency(ctx context.Context, id uuid.UUID, input *UpdateAgencyInput) (*entity.Agency, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, apperror.NewNotFoundError("Agency")
	}

	if input.TypeID != nil {
		agencyType, err := s.agencyTypeRepo.GetByID(ctx, *input.TypeID)
		if err != nil {
			return nil, err
		}
		if agencyType == nil {
			return nil, apperror.NewNotFoundError("Agency type")
		}
		agency.TypeID = input.TypeID
	}

	if input.Name != nil {
		agency.Name = *input.Name
	}
	if input.District != nil {
		agency.District = *input.District
	}
	if input.Phone != nil {
		agency.Phone = input.Phone
	}
	if input.Email != nil {
		agency.Email = input.Email
	}
	if input.Address != nil {
		agency.Address = input.Address
	}

	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, err
	}
	return s.agencyRepo.GetByID(ctx, id)
}

// DeleteAgency deletes an agency. Agencies still carrying debt cannot be
// removed so the receivables ledger stays balanced.
func (s *AgencyService) DeleteAgency(ctx context.Context, id uuid.UUID) error {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if agency == nil {
		return apperror.NewNotFoundError("Agency")
	}
	if agency.Debt != 0 {
		return apperror.NewBadRequestError("Cannot delete an agency with outstanding debt")
	}
	return s.agencyRepo.Delete(ctx, id)
}

// ListAgencies lists agencies with filtering
func (s *AgencyService) ListAgencies(ctx context.Context, params *repository.AgencyFilterParams) (*pagination.PaginatedResult[entity.Agency], error) {
	agencies, total, err := s.agencyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(agencies, pag), nil
}

// ListAgencyTypes lists all agency types
func (s *AgencyService) ListAgencyTypes(ctx context.Context) ([]entity.AgencyType, error) {
	return s.agencyTypeRepo.List(ctx)
}

// CreateAgencyTypeInput represents the create agency type input
type CreateAgencyTypeInput struct {
	Name    string
	MaxDebt float64
}

// CreateAgencyType creates a new agency type with a debt ceiling
func (s *AgencyService) CreateAgencyType(ctx context.Context, input *CreateAgencyTypeInput) (*entity.AgencyType, error) {
	existing, err := s.agencyTypeRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Agency type name already exists")
	}

	agencyType := &entity.AgencyType{
		Name:    input.Name,
		MaxDebt: int64(input.MaxDebt * 100),
	}
	if err := s.agencyTypeRepo.Create(ctx, agencyType); err != nil {
		return nil, err
	}
	return agencyType, nil
}
