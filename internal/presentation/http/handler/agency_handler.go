package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/application/service"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/request"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/response"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// AgencyHandler handles agency-related HTTP requests
type AgencyHandler struct {
	agencyService *service.AgencyService
}

// NewAgencyHandler creates a new agency handler
func NewAgencyHandler(agencyService *service.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

// List handles listing agencies
func (h *AgencyHandler) List(c *gin.Context) {
	var filter request.AgencyFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AgencyFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		District:  filter.District,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.TypeID != "" {
		typeID, err := uuid.Parse(filter.TypeID)
		if err == nil {
			params.TypeID = &typeID
		}
	}

	result, err := h.agencyService.ListAgencies(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Agencies retrieved successfully", result)
}

// Create handles creating an agency
func (h *AgencyHandler) Create(c *gin.Context) {
	var req request.CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agency, err := h.agencyService.CreateAgency(c.Request.Context(), &service.CreateAgencyInput{
		Name:          req.Name,
		TypeID:        req.TypeID,
		District:      req.District,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ReceptionDate: req.ReceptionDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Agency created successfully", agency)
}

// Get handles getting a single agency
func (h *AgencyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agency ID")
		return
	}

	agency, err := h.agencyService.GetAgency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agency retrieved successfully", agency)
}

// Update handles updating an agency
func (h *AgencyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agency ID")
		return
	}

	var req request.UpdateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agency, err := h.agencyService.UpdateAgency(c.Request.Context(), id, &service.UpdateAgencyInput{
		Name:     req.Name,
		TypeID:   req.TypeID,
		District: req.District,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agency updated successfully", agency)
}

// Delete handles deleting an agency
func (h *AgencyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agency ID")
		return
	}

	if err := h.agencyService.DeleteAgency(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListTypes handles listing agency types
func (h *AgencyHandler) ListTypes(c *gin.Context) {
	types, err := h.agencyService.ListAgencyTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agency types retrieved successfully", types)
}

// CreateType handles creating an agency type
func (h *AgencyHandler) CreateType(c *gin.Context) {
	var req request.CreateAgencyTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agencyType, err := h.agencyService.CreateAgencyType(c.Request.Context(), &service.CreateAgencyTypeInput{
		Name:    req.Name,
		MaxDebt: req.MaxDebt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Agency type created successfully", agencyType)
}
