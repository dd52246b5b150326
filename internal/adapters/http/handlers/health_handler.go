package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db           *gorm.DB
	auditService *services.AuditService
	startedAt    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, auditService *services.AuditService) *HealthHandler {
	return &HealthHandler{
		db:           db,
		auditService: auditService,
		startedAt:    time.Now(),
	}
}

// Health is the liveness probe
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Ready is the readiness probe, it checks database connectivity
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := config.HealthCheck(h.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// Detailed reports system status for administrators
// @Summary Detailed health
// @Description Database connectivity, uptime and 24h audit activity
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /health/detailed [get]
func (h *HealthHandler) Detailed(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := config.HealthCheck(h.db); err != nil {
		dbStatus = "unreachable"
	}

	auditCount, err := h.auditService.CountSince(c.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		auditCount = -1
	}

	status := "ok"
	if dbStatus != "ok" {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":           status,
		"database":         dbStatus,
		"uptime":           time.Since(h.startedAt).String(),
		"audit_events_24h": auditCount,
	})
}
