package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// inventoryRepository implements InventoryRepository interface
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// CreateAsset creates a new asset
func (r *inventoryRepository) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetAssetByID gets an asset by ID with category preloaded
func (r *inventoryRepository) GetAssetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ExistsAssetBySerial checks if serial number is taken
func (r *inventoryRepository) ExistsAssetBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("serial_number = ?", serial).Count(&count).Error
	return count > 0, err
}

// UpdateAsset updates an asset
func (r *inventoryRepository) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// ListAssets lists assets with optional status and category filters
func (r *inventoryRepository) ListAssets(ctx context.Context, filter AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Asset{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Category").Order("asset_tag").
		Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// ListAssetCategories lists all asset categories
func (r *inventoryRepository) ListAssetCategories(ctx context.Context) ([]*models.AssetCategory, error) {
	var categories []*models.AssetCategory
	err := r.db.WithContext(ctx).Order("category_name").Find(&categories).Error
	return categories, err
}

// ListAssetsWarrantyExpiring lists assets whose warranty expires inside
// the given window (YYYY-MM-DD bounds, from exclusive of already expired)
func (r *inventoryRepository) ListAssetsWarrantyExpiring(ctx context.Context, from, to string) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).Preload("Category").
		Where("warranty_expiry <> '' AND warranty_expiry >= ? AND warranty_expiry <= ?", from, to).
		Order("warranty_expiry").Find(&assets).Error
	return assets, err
}

// CreateMaintenanceRecord records maintenance work on an asset
func (r *inventoryRepository) CreateMaintenanceRecord(ctx context.Context, record *models.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListMaintenanceByAsset lists an asset's maintenance history, newest first
func (r *inventoryRepository) ListMaintenanceByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	var records []*models.MaintenanceRecord
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("maintenance_date DESC, created_at DESC").Find(&records).Error
	return records, err
}

// CreateConsumable creates a new consumable
func (r *inventoryRepository) CreateConsumable(ctx context.Context, consumable *models.Consumable) error {
	return r.db.WithContext(ctx).Create(consumable).Error
}

// GetConsumableByID gets an active consumable by ID with category preloaded
func (r *inventoryRepository) GetConsumableByID(ctx context.Context, id uint) (*models.Consumable, error) {
	var consumable models.Consumable
	err := r.db.WithContext(ctx).Preload("Category").
		Where("id = ? AND is_active = ?", id, true).First(&consumable).Error
	if err != nil {
		return nil, err
	}
	return &consumable, nil
}

// UpdateConsumable updates a consumable
func (r *inventoryRepository) UpdateConsumable(ctx context.Context, consumable *models.Consumable) error {
	return r.db.WithContext(ctx).Save(consumable).Error
}

// DeactivateConsumable marks a consumable inactive
func (r *inventoryRepository) DeactivateConsumable(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Consumable{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()}).Error
}

// ListConsumables lists active consumables with optional category filter
func (r *inventoryRepository) ListConsumables(ctx context.Context, categoryID uint, offset, limit int) ([]*models.Consumable, int64, error) {
	var consumables []*models.Consumable
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Consumable{}).Where("is_active = ?", true)
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Category").Order("name").
		Offset(offset).Limit(limit).Find(&consumables).Error; err != nil {
		return nil, 0, err
	}

	return consumables, total, nil
}

// ListActiveConsumables lists every active consumable, for the alert scan
func (r *inventoryRepository) ListActiveConsumables(ctx context.Context) ([]*models.Consumable, error) {
	var consumables []*models.Consumable
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&consumables).Error
	return consumables, err
}

// ListConsumableCategories lists all consumable categories
func (r *inventoryRepository) ListConsumableCategories(ctx context.Context) ([]*models.ConsumableCategory, error) {
	var categories []*models.ConsumableCategory
	err := r.db.WithContext(ctx).Order("category_name").Find(&categories).Error
	return categories, err
}

// CreateSupplier creates a new supplier
func (r *inventoryRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// GetSupplierByID gets an active supplier by ID
func (r *inventoryRepository) GetSupplierByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// UpdateSupplier updates a supplier
func (r *inventoryRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// ListSuppliers lists active suppliers
func (r *inventoryRepository) ListSuppliers(ctx context.Context, offset, limit int) ([]*models.Supplier, int64, error) {
	var suppliers []*models.Supplier
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("is_active = ?", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("supplier_name").Offset(offset).Limit(limit).Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

// CreateBatch records a received stock batch
func (r *inventoryRepository) CreateBatch(ctx context.Context, batch *models.StockBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// GetBatchByID gets a stock batch by ID
func (r *inventoryRepository) GetBatchByID(ctx context.Context, id uint) (*models.StockBatch, error) {
	var batch models.StockBatch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// UpdateBatch updates a stock batch
func (r *inventoryRepository) UpdateBatch(ctx context.Context, batch *models.StockBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// ListBatchesByConsumable lists batches of a consumable, oldest expiry first
func (r *inventoryRepository) ListBatchesByConsumable(ctx context.Context, consumableID uint) ([]*models.StockBatch, error) {
	var batches []*models.StockBatch
	err := r.db.WithContext(ctx).Where("consumable_id = ?", consumableID).
		Order("expiry_date").Find(&batches).Error
	return batches, err
}

// ListBatchesExpiringBefore lists batches with remaining stock expiring
// before the given date (YYYY-MM-DD)
func (r *inventoryRepository) ListBatchesExpiringBefore(ctx context.Context, date string) ([]*models.StockBatch, error) {
	var batches []*models.StockBatch
	err := r.db.WithContext(ctx).Preload("Consumable").
		Where("expiry_date < ? AND quantity_current > 0 AND status = ?", date, "Active").
		Order("expiry_date").Find(&batches).Error
	return batches, err
}

// TotalStock sums remaining quantity across active batches of a consumable
func (r *inventoryRepository) TotalStock(ctx context.Context, consumableID uint) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.StockBatch{}).
		Where("consumable_id = ? AND status = ?", consumableID, "Active").
		Select("COALESCE(SUM(quantity_current), 0)").Scan(&total).Error
	return int(total), err
}

// CreateAdjustment records a stock adjustment
func (r *inventoryRepository) CreateAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// CreateAlert creates an inventory alert
func (r *inventoryRepository) CreateAlert(ctx context.Context, alert *models.InventoryAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// ListAlerts lists alerts, newest first
func (r *inventoryRepository) ListAlerts(ctx context.Context, unacknowledgedOnly bool, offset, limit int) ([]*models.InventoryAlert, int64, error) {
	var alerts []*models.InventoryAlert
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InventoryAlert{})
	if unacknowledgedOnly {
		query = query.Where("is_acknowledged = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// AcknowledgeAlert marks an alert acknowledged by a user
func (r *inventoryRepository) AcknowledgeAlert(ctx context.Context, id, userID uint) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.InventoryAlert{}).
		Where("id = ? AND is_acknowledged = ?", id, false).
		Updates(map[string]interface{}{
			"is_acknowledged": true,
			"acknowledged_by": userID,
			"acknowledged_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsOpenAlert checks for an unacknowledged alert of the same kind,
// so the daily scan does not raise duplicates
func (r *inventoryRepository) ExistsOpenAlert(ctx context.Context, alertType string, consumableID uint, stockID *uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InventoryAlert{}).
		Where("alert_type = ? AND consumable_id = ? AND is_acknowledged = ?", alertType, consumableID, false)
	if stockID != nil {
		query = query.Where("stock_id = ?", *stockID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
