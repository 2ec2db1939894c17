package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ndtduy/agency-api/internal/application/service"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard statistics requests
type DashboardHandler struct {
	reportService *service.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}
