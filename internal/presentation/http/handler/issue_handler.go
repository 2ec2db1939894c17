package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/application/service"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/request"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/response"
	"github.com/ndtduy/agency-api/pkg/pagination"
)

// IssueHandler handles issue-related HTTP requests
type IssueHandler struct {
	issueService *service.IssueService
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issueService *service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// List handles listing issues
func (h *IssueHandler) List(c *gin.Context) {
	var filter request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.IssueFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	applyDocumentFilters(&filter, &params.AgencyID, &params.StartDate, &params.EndDate)

	if filter.Status != "" {
		status := parseIssueStatus(filter.Status)
		if status != nil {
			params.Status = status
		}
	}

	result, err := h.issueService.ListIssues(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Issues retrieved successfully", result)
}

// Create handles creating an issue
func (h *IssueHandler) Create(c *gin.Context) {
	var req request.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateIssueInput{
		AgencyID:  req.AgencyID,
		IssueDate: req.IssueDate,
		Items:     make([]service.IssueLineInput, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.IssueLineInput{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	issue, err := h.issueService.CreateIssue(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Issue created successfully", issue)
}

// Get handles getting a single issue with its lines
func (h *IssueHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.GetIssue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Issue retrieved successfully", issue)
}

// Delete handles deleting an issue
func (h *IssueHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	if err := h.issueService.DeleteIssue(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CheckStock handles the read-only stock sufficiency check
func (h *IssueHandler) CheckStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	result, err := h.issueService.CheckStock(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock check completed", result)
}

// Confirm handles confirming an issue
func (h *IssueHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.ConfirmIssue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Issue confirmed successfully", issue)
}

// Deliver handles marking a confirmed issue as delivered
func (h *IssueHandler) Deliver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.DeliverIssue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Issue delivered successfully", issue)
}

// Postpone handles postponing a processing issue
func (h *IssueHandler) Postpone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	var req request.PostponeIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	issue, err := h.issueService.PostponeIssue(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Issue postponed successfully", issue)
}

func parseIssueStatus(s string) *enum.IssueStatus {
	var status enum.IssueStatus
	switch s {
	case "processing", "Processing":
		status = enum.IssueStatusProcessing
	case "confirmed", "Confirmed":
		status = enum.IssueStatusConfirmed
	case "delivered", "Delivered":
		status = enum.IssueStatusDelivered
	case "postponed", "Postponed":
		status = enum.IssueStatusPostponed
	default:
		return nil
	}
	return &status
}
