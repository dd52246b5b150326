package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Inventory errors
var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrSerialNumberInUse  = errors.New("asset with this serial number already exists")
	ErrInvalidAssetStatus = errors.New("invalid asset status")
	ErrConsumableNotFound = errors.New("consumable not found")
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrBatchNotFound      = errors.New("stock batch not found")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrInsufficientStock  = errors.New("adjustment exceeds remaining stock")
	ErrInvalidAdjustment  = errors.New("adjustment must not be zero")
)

// InventoryService handles assets, consumables, suppliers, stock and alerts
type InventoryService struct {
	inventoryRepo repositories.InventoryRepository
	audit         *AuditService
	log           zerolog.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repositories.InventoryRepository, audit *AuditService) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		audit:         audit,
		log:           logger.Get(),
	}
}

// CreateAssetInput represents asset registration input
type CreateAssetInput struct {
	AssetTag       string  `json:"asset_tag"`
	AssetName      string  `json:"asset_name" validate:"required"`
	SerialNumber   string  `json:"serial_number" validate:"required"`
	CategoryID     uint    `json:"category_id" validate:"required"`
	Manufacturer   string  `json:"manufacturer"`
	Model          string  `json:"model"`
	PurchaseDate   string  `json:"purchase_date"`
	WarrantyExpiry string  `json:"warranty_expiry"`
	Location       string  `json:"location"`
	PurchaseCost   float64 `json:"purchase_cost"`
	Status         string  `json:"status"`
}

// UpdateAssetInput represents a partial asset update. Nil fields are unchanged.
type UpdateAssetInput struct {
	AssetName      *string  `json:"asset_name"`
	Manufacturer   *string  `json:"manufacturer"`
	Model          *string  `json:"model"`
	WarrantyExpiry *string  `json:"warranty_expiry"`
	Location       *string  `json:"location"`
	PurchaseCost   *float64 `json:"purchase_cost"`
	Status         *string  `json:"status"`
}

// AddMaintenanceInput represents a maintenance record for an asset
type AddMaintenanceInput struct {
	MaintenanceDate string  `json:"maintenance_date" validate:"required"`
	MaintenanceType string  `json:"maintenance_type" validate:"required"`
	Description     string  `json:"description"`
	Cost            float64 `json:"cost"`
	PerformedBy     string  `json:"performed_by"`
	NextDueDate     string  `json:"next_due_date"`
	Notes           string  `json:"notes"`
}

// CreateConsumableInput represents consumable catalog input
type CreateConsumableInput struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	CategoryID   uint    `json:"category_id" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	UnitCost     float64 `json:"unit_cost"`
	ReorderLevel int     `json:"reorder_level"`
	MaximumStock int     `json:"maximum_stock"`
}

// CreateSupplierInput represents supplier input
type CreateSupplierInput struct {
	SupplierName  string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address"`
	TaxNumber     string `json:"tax_number"`
}

// ReceiveStockInput represents a received shipment batch
type ReceiveStockInput struct {
	ConsumableID     uint    `json:"consumable_id" validate:"required"`
	BatchNumber      string  `json:"batch_number" validate:"required"`
	SupplierID       uint    `json:"supplier_id" validate:"required"`
	QuantityReceived int     `json:"quantity_received" validate:"required,gt=0"`
	UnitCost         float64 `json:"unit_cost" validate:"required"`
	ManufactureDate  string  `json:"manufacture_date" validate:"required"`
	ExpiryDate       string  `json:"expiry_date" validate:"required"`
	Location         string  `json:"location"`
}

// AdjustStockInput represents a manual stock correction
type AdjustStockInput struct {
	Adjustment int    `json:"adjustment" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// ConsumableStock pairs a consumable with its remaining stock level
type ConsumableStock struct {
	Consumable *models.Consumable `json:"consumable"`
	TotalStock int                `json:"total_stock"`
	LowStock   bool               `json:"low_stock"`
}

// CreateAsset registers a new asset. A missing asset tag is generated.
func (s *InventoryService) CreateAsset(ctx context.Context, input *CreateAssetInput, actorID uint, meta RequestMeta) (*models.Asset, error) {
	// 1. Serial numbers are unique
	exists, err := s.inventoryRepo.ExistsAssetBySerial(ctx, input.SerialNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSerialNumberInUse
	}

	// 2. Default tag and status
	tag := input.AssetTag
	if tag == "" {
		tag = fmt.Sprintf("AST-%s", time.Now().UTC().Format("20060102150405"))
	}
	status := input.Status
	if status == "" {
		status = models.AssetOperational
	}
	if !models.ValidAssetStatus(status) {
		return nil, ErrInvalidAssetStatus
	}

	// 3. Create
	asset := &models.Asset{
		AssetTag:       tag,
		AssetName:      input.AssetName,
		SerialNumber:   input.SerialNumber,
		CategoryID:     input.CategoryID,
		Manufacturer:   input.Manufacturer,
		Model:          input.Model,
		PurchaseDate:   input.PurchaseDate,
		WarrantyExpiry: input.WarrantyExpiry,
		Location:       input.Location,
		PurchaseCost:   input.PurchaseCost,
		Status:         status,
		CreatedByID:    actorID,
	}
	if err := s.inventoryRepo.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "asset",
		EntityID:   asset.ID,
		Detail:     map[string]string{"asset_tag": asset.AssetTag, "name": asset.AssetName},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("asset_id", asset.ID).Str("tag", asset.AssetTag).Msg("asset registered")

	return asset, nil
}

// GetAsset gets an asset by ID
func (s *InventoryService) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.inventoryRepo.GetAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// UpdateAsset applies a partial update to an asset
func (s *InventoryService) UpdateAsset(ctx context.Context, id uint, input *UpdateAssetInput, actorID uint, meta RequestMeta) (*models.Asset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]string{}
	if input.AssetName != nil {
		asset.AssetName = *input.AssetName
		changed["asset_name"] = *input.AssetName
	}
	if input.Manufacturer != nil {
		asset.Manufacturer = *input.Manufacturer
		changed["manufacturer"] = *input.Manufacturer
	}
	if input.Model != nil {
		asset.Model = *input.Model
		changed["model"] = *input.Model
	}
	if input.WarrantyExpiry != nil {
		asset.WarrantyExpiry = *input.WarrantyExpiry
		changed["warranty_expiry"] = *input.WarrantyExpiry
	}
	if input.Location != nil {
		asset.Location = *input.Location
		changed["location"] = *input.Location
	}
	if input.PurchaseCost != nil {
		asset.PurchaseCost = *input.PurchaseCost
		changed["purchase_cost"] = fmt.Sprintf("%.2f", *input.PurchaseCost)
	}
	if input.Status != nil {
		if !models.ValidAssetStatus(*input.Status) {
			return nil, ErrInvalidAssetStatus
		}
		asset.Status = *input.Status
		changed["status"] = *input.Status
	}

	if err := s.inventoryRepo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "asset",
		EntityID:   asset.ID,
		Detail:     changed,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return asset, nil
}

// ListAssets lists assets with filters and pagination
func (s *InventoryService) ListAssets(ctx context.Context, filter repositories.AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	if filter.Status != "" && !models.ValidAssetStatus(filter.Status) {
		return nil, 0, ErrInvalidAssetStatus
	}
	return s.inventoryRepo.ListAssets(ctx, filter, offset, limit)
}

// ListAssetCategories lists asset categories
func (s *InventoryService) ListAssetCategories(ctx context.Context) ([]*models.AssetCategory, error) {
	return s.inventoryRepo.ListAssetCategories(ctx)
}

// AddMaintenance records maintenance work against an asset
func (s *InventoryService) AddMaintenance(ctx context.Context, assetID uint, input *AddMaintenanceInput, actorID uint, meta RequestMeta) (*models.MaintenanceRecord, error) {
	// 1. Asset must exist
	asset, err := s.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	// 2. Create
	record := &models.MaintenanceRecord{
		AssetID:         asset.ID,
		MaintenanceDate: input.MaintenanceDate,
		MaintenanceType: input.MaintenanceType,
		Description:     input.Description,
		Cost:            input.Cost,
		PerformedBy:     input.PerformedBy,
		NextDueDate:     input.NextDueDate,
		Notes:           input.Notes,
		CreatedByID:     actorID,
	}
	if err := s.inventoryRepo.CreateMaintenanceRecord(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "asset_maintenance",
		EntityID:   record.ID,
		Detail: map[string]string{
			"asset_tag": asset.AssetTag,
			"type":      input.MaintenanceType,
			"date":      input.MaintenanceDate,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return record, nil
}

// ListMaintenance lists an asset's maintenance history
func (s *InventoryService) ListMaintenance(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	if _, err := s.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListMaintenanceByAsset(ctx, assetID)
}

// ListWarrantyAlerts lists assets whose warranty expires within the next
// daysAhead days. Already-expired warranties are not reported.
func (s *InventoryService) ListWarrantyAlerts(ctx context.Context, daysAhead int) ([]*models.Asset, error) {
	if daysAhead <= 0 {
		daysAhead = 30
	}
	now := time.Now().UTC()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, daysAhead).Format("2006-01-02")
	return s.inventoryRepo.ListAssetsWarrantyExpiring(ctx, from, to)
}

// CreateConsumable adds a consumable to the catalog
func (s *InventoryService) CreateConsumable(ctx context.Context, input *CreateConsumableInput, actorID uint, meta RequestMeta) (*models.Consumable, error) {
	reorder := input.ReorderLevel
	if reorder <= 0 {
		reorder = 10
	}
	maximum := input.MaximumStock
	if maximum <= 0 {
		maximum = 100
	}

	consumable := &models.Consumable{
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		Unit:         input.Unit,
		UnitCost:     input.UnitCost,
		ReorderLevel: reorder,
		MaximumStock: maximum,
		IsActive:     true,
		CreatedByID:  actorID,
	}
	if err := s.inventoryRepo.CreateConsumable(ctx, consumable); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "consumable",
		EntityID:   consumable.ID,
		Detail:     map[string]string{"name": consumable.Name},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return consumable, nil
}

// GetConsumableStock returns a consumable with its remaining stock level
func (s *InventoryService) GetConsumableStock(ctx context.Context, id uint) (*ConsumableStock, error) {
	consumable, err := s.inventoryRepo.GetConsumableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsumableNotFound
		}
		return nil, err
	}

	total, err := s.inventoryRepo.TotalStock(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ConsumableStock{
		Consumable: consumable,
		TotalStock: total,
		LowStock:   total <= consumable.ReorderLevel,
	}, nil
}

// DeactivateConsumable removes a consumable from the catalog
func (s *InventoryService) DeactivateConsumable(ctx context.Context, id, actorID uint, meta RequestMeta) error {
	if _, err := s.inventoryRepo.GetConsumableByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConsumableNotFound
		}
		return err
	}
	if err := s.inventoryRepo.DeactivateConsumable(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionDeactivate,
		EntityType: "consumable",
		EntityID:   id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// ListConsumables lists active consumables
func (s *InventoryService) ListConsumables(ctx context.Context, categoryID uint, offset, limit int) ([]*models.Consumable, int64, error) {
	return s.inventoryRepo.ListConsumables(ctx, categoryID, offset, limit)
}

// ListConsumableCategories lists consumable categories
func (s *InventoryService) ListConsumableCategories(ctx context.Context) ([]*models.ConsumableCategory, error) {
	return s.inventoryRepo.ListConsumableCategories(ctx)
}

// CreateSupplier registers a supplier
func (s *InventoryService) CreateSupplier(ctx context.Context, input *CreateSupplierInput, actorID uint, meta RequestMeta) (*models.Supplier, error) {
	supplier := &models.Supplier{
		SupplierName:  input.SupplierName,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		TaxNumber:     input.TaxNumber,
		IsActive:      true,
	}
	if err := s.inventoryRepo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "supplier",
		EntityID:   supplier.ID,
		Detail:     map[string]string{"name": supplier.SupplierName},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return supplier, nil
}

// ListSuppliers lists active suppliers
func (s *InventoryService) ListSuppliers(ctx context.Context, offset, limit int) ([]*models.Supplier, int64, error) {
	return s.inventoryRepo.ListSuppliers(ctx, offset, limit)
}

// ReceiveStock records a received shipment batch for a consumable
func (s *InventoryService) ReceiveStock(ctx context.Context, input *ReceiveStockInput, actorID uint, meta RequestMeta) (*models.StockBatch, error) {
	// 1. Consumable and supplier must exist
	if _, err := s.inventoryRepo.GetConsumableByID(ctx, input.ConsumableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsumableNotFound
		}
		return nil, err
	}
	if _, err := s.inventoryRepo.GetSupplierByID(ctx, input.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	// 2. Record the batch; current quantity starts equal to received
	location := input.Location
	if location == "" {
		location = "Main Store"
	}

	batch := &models.StockBatch{
		ConsumableID:     input.ConsumableID,
		BatchNumber:      input.BatchNumber,
		SupplierID:       input.SupplierID,
		QuantityReceived: input.QuantityReceived,
		QuantityCurrent:  input.QuantityReceived,
		QuantityUsed:     0,
		UnitCost:         input.UnitCost,
		TotalCost:        float64(input.QuantityReceived) * input.UnitCost,
		ManufactureDate:  input.ManufactureDate,
		ExpiryDate:       input.ExpiryDate,
		ReceivedDate:     time.Now().UTC().Format("2006-01-02"),
		Location:         location,
		Status:           "Active",
		ReceivedByID:     actorID,
	}
	if err := s.inventoryRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionReceive,
		EntityType: "stock_batch",
		EntityID:   batch.ID,
		Detail: map[string]string{
			"consumable_id": fmt.Sprint(input.ConsumableID),
			"batch_number":  input.BatchNumber,
			"quantity":      fmt.Sprint(input.QuantityReceived),
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	s.log.Info().Uint("batch_id", batch.ID).Int("quantity", input.QuantityReceived).Msg("stock received")

	return batch, nil
}

// AdjustStock corrects a batch quantity. Negative adjustments consume
// stock, positive ones return it; the batch can never go below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, batchID uint, input *AdjustStockInput, actorID uint, meta RequestMeta) (*models.StockBatch, error) {
	if input.Adjustment == 0 {
		return nil, ErrInvalidAdjustment
	}

	batch, err := s.inventoryRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	next := batch.QuantityCurrent + input.Adjustment
	if next < 0 {
		return nil, ErrInsufficientStock
	}
	batch.QuantityCurrent = next
	if input.Adjustment < 0 {
		batch.QuantityUsed += -input.Adjustment
	}

	if err := s.inventoryRepo.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.CreateAdjustment(ctx, &models.StockAdjustment{
		StockID:      batchID,
		Adjustment:   input.Adjustment,
		Reason:       input.Reason,
		AdjustedByID: actorID,
	}); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionAdjust,
		EntityType: "stock_batch",
		EntityID:   batchID,
		Detail: map[string]string{
			"adjustment": fmt.Sprint(input.Adjustment),
			"reason":     input.Reason,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return batch, nil
}

// ListBatches lists stock batches of a consumable
func (s *InventoryService) ListBatches(ctx context.Context, consumableID uint) ([]*models.StockBatch, error) {
	if _, err := s.inventoryRepo.GetConsumableByID(ctx, consumableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsumableNotFound
		}
		return nil, err
	}
	return s.inventoryRepo.ListBatchesByConsumable(ctx, consumableID)
}

// ListAlerts lists inventory alerts
func (s *InventoryService) ListAlerts(ctx context.Context, unacknowledgedOnly bool, offset, limit int) ([]*models.InventoryAlert, int64, error) {
	return s.inventoryRepo.ListAlerts(ctx, unacknowledgedOnly, offset, limit)
}

// AcknowledgeAlert marks an alert as handled
func (s *InventoryService) AcknowledgeAlert(ctx context.Context, id, actorID uint, meta RequestMeta) error {
	if err := s.inventoryRepo.AcknowledgeAlert(ctx, id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "inventory_alert",
		EntityID:   id,
		Detail:     map[string]string{"change": "acknowledged"},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}
