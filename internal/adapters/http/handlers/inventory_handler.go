package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/pagination"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/response"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/validation"
)

// InventoryHandler handles asset, consumable, supplier and stock endpoints
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateAsset registers an asset
// @Summary Register asset
// @Description Register a new asset, generating a tag when absent
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAssetInput true "Asset data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/assets [post]
func (h *InventoryHandler) CreateAsset(c *fiber.Ctx) error {
	var input services.CreateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	asset, err := h.inventoryService.CreateAsset(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSerialNumberInUse):
			return response.Conflict(c, "Asset with this serial number already exists")
		case errors.Is(err, services.ErrInvalidAssetStatus):
			return response.BadRequest(c, "Invalid asset status")
		default:
			return response.InternalServerError(c, "Failed to register asset")
		}
	}

	return response.Created(c, "Asset registered successfully", asset)
}

// ListAssets lists assets
// @Summary List assets
// @Description List assets with status and category filters
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category_id query int false "Category filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /inventory/assets [get]
func (h *InventoryHandler) ListAssets(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	categoryID, _ := strconv.Atoi(c.Query("category_id", "0"))
	filter := repositories.AssetFilter{
		Status:     c.Query("status"),
		CategoryID: uint(categoryID),
	}

	assets, total, err := h.inventoryService.ListAssets(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAssetStatus) {
			return response.BadRequest(c, "Invalid asset status")
		}
		return response.InternalServerError(c, "Failed to list assets")
	}

	return response.Success(c, "", pagination.NewResponse(assets, params, total))
}

// GetAsset returns one asset
// @Summary Get asset
// @Description Get one asset by ID
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/assets/{id} [get]
func (h *InventoryHandler) GetAsset(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid asset ID")
	}

	asset, err := h.inventoryService.GetAsset(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to load asset")
	}

	return response.Success(c, "", asset)
}

// UpdateAsset applies a partial asset update
// @Summary Update asset
// @Description Update asset fields including status
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.UpdateAssetInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/assets/{id} [put]
func (h *InventoryHandler) UpdateAsset(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.UpdateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.inventoryService.UpdateAsset(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, services.ErrInvalidAssetStatus):
			return response.BadRequest(c, "Invalid asset status")
		default:
			return response.InternalServerError(c, "Failed to update asset")
		}
	}

	return response.Success(c, "Asset updated successfully", asset)
}

// ListAssetCategories lists asset categories
// @Summary List asset categories
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/asset-categories [get]
func (h *InventoryHandler) ListAssetCategories(c *fiber.Ctx) error {
	categories, err := h.inventoryService.ListAssetCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "", categories)
}

// AddMaintenance records maintenance work on an asset
// @Summary Record asset maintenance
// @Description Record maintenance performed on an asset
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.AddMaintenanceInput true "Maintenance data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/assets/{id}/maintenance [post]
func (h *InventoryHandler) AddMaintenance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.AddMaintenanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	record, err := h.inventoryService.AddMaintenance(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to record maintenance")
	}

	return response.Created(c, "Maintenance recorded successfully", record)
}

// ListMaintenance lists an asset's maintenance history
// @Summary List asset maintenance
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/assets/{id}/maintenance [get]
func (h *InventoryHandler) ListMaintenance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid asset ID")
	}

	records, err := h.inventoryService.ListMaintenance(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to list maintenance records")
	}

	return response.Success(c, "", records)
}

// WarrantyAlerts lists assets with warranties expiring soon
// @Summary Warranty alerts
// @Description List assets whose warranty expires within the given window
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param days_ahead query int false "Window in days (default 30)"
// @Success 200 {object} response.Response
// @Router /inventory/alerts/warranty [get]
func (h *InventoryHandler) WarrantyAlerts(c *fiber.Ctx) error {
	daysAhead, _ := strconv.Atoi(c.Query("days_ahead", "30"))

	assets, err := h.inventoryService.ListWarrantyAlerts(c.Context(), daysAhead)
	if err != nil {
		return response.InternalServerError(c, "Failed to list warranty alerts")
	}

	return response.Success(c, "", assets)
}

// CreateConsumable adds a consumable to the catalog
// @Summary Create consumable
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateConsumableInput true "Consumable data"
// @Success 201 {object} response.Response
// @Router /inventory/consumables [post]
func (h *InventoryHandler) CreateConsumable(c *fiber.Ctx) error {
	var input services.CreateConsumableInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	consumable, err := h.inventoryService.CreateConsumable(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to create consumable")
	}

	return response.Created(c, "Consumable created successfully", consumable)
}

// ListConsumables lists consumables
// @Summary List consumables
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param category_id query int false "Category filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /inventory/consumables [get]
func (h *InventoryHandler) ListConsumables(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	categoryID, _ := strconv.Atoi(c.Query("category_id", "0"))

	consumables, total, err := h.inventoryService.ListConsumables(c.Context(), uint(categoryID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list consumables")
	}

	return response.Success(c, "", pagination.NewResponse(consumables, params, total))
}

// GetConsumable returns a consumable with its stock level
// @Summary Get consumable
// @Description Get a consumable with its remaining stock level
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consumable ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/consumables/{id} [get]
func (h *InventoryHandler) GetConsumable(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid consumable ID")
	}

	stock, err := h.inventoryService.GetConsumableStock(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrConsumableNotFound) {
			return response.NotFound(c, "Consumable not found")
		}
		return response.InternalServerError(c, "Failed to load consumable")
	}

	return response.Success(c, "", stock)
}

// DeactivateConsumable removes a consumable from the catalog
// @Summary Deactivate consumable
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consumable ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/consumables/{id} [delete]
func (h *InventoryHandler) DeactivateConsumable(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid consumable ID")
	}

	err = h.inventoryService.DeactivateConsumable(c.Context(), uint(id), middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrConsumableNotFound) {
			return response.NotFound(c, "Consumable not found")
		}
		return response.InternalServerError(c, "Failed to deactivate consumable")
	}

	return response.Success(c, "Consumable deactivated successfully", nil)
}

// ListConsumableCategories lists consumable categories
// @Summary List consumable categories
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/consumable-categories [get]
func (h *InventoryHandler) ListConsumableCategories(c *fiber.Ctx) error {
	categories, err := h.inventoryService.ListConsumableCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "", categories)
}

// CreateSupplier registers a supplier
// @Summary Create supplier
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateSupplierInput true "Supplier data"
// @Success 201 {object} response.Response
// @Router /inventory/suppliers [post]
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var input services.CreateSupplierInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	supplier, err := h.inventoryService.CreateSupplier(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to create supplier")
	}

	return response.Created(c, "Supplier created successfully", supplier)
}

// ListSuppliers lists suppliers
// @Summary List suppliers
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /inventory/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	suppliers, total, err := h.inventoryService.ListSuppliers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list suppliers")
	}

	return response.Success(c, "", pagination.NewResponse(suppliers, params, total))
}

// ReceiveStock records a received shipment batch
// @Summary Receive stock
// @Description Record a received shipment batch for a consumable
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ReceiveStockInput true "Shipment data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/stock/receive [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var input services.ReceiveStockInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	batch, err := h.inventoryService.ReceiveStock(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConsumableNotFound):
			return response.NotFound(c, "Consumable not found")
		case errors.Is(err, services.ErrSupplierNotFound):
			return response.NotFound(c, "Supplier not found")
		default:
			return response.InternalServerError(c, "Failed to receive stock")
		}
	}

	return response.Created(c, "Stock received successfully", batch)
}

// AdjustStock corrects a batch quantity
// @Summary Adjust stock
// @Description Apply a signed correction to a stock batch
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Param body body services.AdjustStockInput true "Adjustment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/stock/{id}/adjust [put]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid batch ID")
	}

	var input services.AdjustStockInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	batch, err := h.inventoryService.AdjustStock(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchNotFound):
			return response.NotFound(c, "Stock batch not found")
		case errors.Is(err, services.ErrInsufficientStock):
			return response.BadRequest(c, "Adjustment exceeds remaining stock")
		case errors.Is(err, services.ErrInvalidAdjustment):
			return response.BadRequest(c, "Adjustment must not be zero")
		default:
			return response.InternalServerError(c, "Failed to adjust stock")
		}
	}

	return response.Success(c, "Stock adjusted successfully", batch)
}

// ListBatches lists stock batches of a consumable
// @Summary List stock batches
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consumable ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/consumables/{id}/batches [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid consumable ID")
	}

	batches, err := h.inventoryService.ListBatches(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrConsumableNotFound) {
			return response.NotFound(c, "Consumable not found")
		}
		return response.InternalServerError(c, "Failed to list batches")
	}

	return response.Success(c, "", batches)
}

// ListAlerts lists inventory alerts
// @Summary List alerts
// @Description List inventory alerts raised by the daily scan
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param unacknowledged query bool false "Only open alerts"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	unacknowledgedOnly := c.Query("unacknowledged") == "true"

	alerts, total, err := h.inventoryService.ListAlerts(c.Context(), unacknowledgedOnly, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list alerts")
	}

	return response.Success(c, "", pagination.NewResponse(alerts, params, total))
}

// AcknowledgeAlert marks an alert handled
// @Summary Acknowledge alert
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/alerts/{id}/acknowledge [put]
func (h *InventoryHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid alert ID")
	}

	err = h.inventoryService.AcknowledgeAlert(c.Context(), uint(id), middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return response.NotFound(c, "Alert not found")
		}
		return response.InternalServerError(c, "Failed to acknowledge alert")
	}

	return response.Success(c, "Alert acknowledged successfully", nil)
}
