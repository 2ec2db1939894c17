package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndtduy/agency-api/internal/application/service"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/internal/presentation/http/dto/response"
)

// maxWatchTimeout bounds how long a long-poll request may hang before the
// client is told nothing changed. Clients may ask for less via `wait`.
const maxWatchTimeout = 30 * time.Second

// InventoryHandler exposes the inventory version counter and the
// reconciliation diagnostic
type InventoryHandler struct {
	broadcaster           *inventory.Broadcaster
	reconciliationService *service.ReconciliationService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(broadcaster *inventory.Broadcaster, reconciliationService *service.ReconciliationService) *InventoryHandler {
	return &InventoryHandler{
		broadcaster:           broadcaster,
		reconciliationService: reconciliationService,
	}
}

// versionPayload is the body of version and watch responses
type versionPayload struct {
	Version int64 `json:"version"`
	Changed bool  `json:"changed"`
}

// GetVersion returns the current inventory version. Clients compare it with
// the version they rendered at and refetch when it moved.
func (h *InventoryHandler) GetVersion(c *gin.Context) {
	response.OK(c, "Inventory version retrieved", versionPayload{
		Version: h.broadcaster.Version(),
		Changed: false,
	})
}

// Watch long-polls until the inventory version exceeds the client's `since`
// value or the poll times out. A timeout is a normal response with
// changed=false, not an error.
func (h *InventoryHandler) Watch(c *gin.Context) {
	since, err := strconv.ParseInt(c.DefaultQuery("since", "0"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid since parameter")
		return
	}

	wait := maxWatchTimeout
	if raw := c.Query("wait"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			response.BadRequest(c, "Invalid wait parameter")
			return
		}
		if requested := time.Duration(seconds) * time.Second; requested < wait {
			wait = requested
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
	defer cancel()

	version, err := h.broadcaster.WaitForChange(ctx, since)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			response.OK(c, "No inventory change", versionPayload{Version: version, Changed: false})
			return
		}
		// Client went away.
		c.Status(499)
		return
	}

	response.OK(c, "Inventory changed", versionPayload{Version: version, Changed: true})
}

// Reconcile runs the stock reconciliation diagnostic and returns the report
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	report, err := h.reconciliationService.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation completed", report)
}
