package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/pagination"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/response"
)

// DashboardHandler handles admin dashboard and audit trail endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	auditService     *services.AuditService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, auditService *services.AuditService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

// Stats returns dashboard counters
// @Summary Dashboard stats
// @Description Aggregate counters for the admin dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard stats")
	}
	return response.Success(c, "", stats)
}

// AuditLogs lists audit trail entries
// @Summary List audit logs
// @Description List audit trail entries, newest first
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "User filter"
// @Param action query string false "Action filter"
// @Param entity_type query string false "Entity type filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /dashboard/audit-logs [get]
func (h *DashboardHandler) AuditLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	userID, _ := strconv.Atoi(c.Query("user_id", "0"))
	filter := repositories.AuditFilter{
		UserID:     uint(userID),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}

	entries, total, err := h.auditService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list audit logs")
	}

	return response.Success(c, "", pagination.NewResponse(entries, params, total))
}
