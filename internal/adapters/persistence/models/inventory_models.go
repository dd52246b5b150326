package models

import (
	"time"
)

// ============================================================
// Inventory Tables
// ============================================================

// Asset statuses
const (
	AssetOperational = "operational"
	AssetMaintenance = "maintenance"
	AssetRetired     = "retired"
	AssetLost        = "lost"
	AssetDamaged     = "damaged"
)

// Alert types raised by the daily inventory scan
const (
	AlertLowStock      = "low_stock"
	AlertExpiringStock = "expiring_stock"
	AlertExpiredStock  = "expired_stock"
)

// ValidAssetStatus reports whether s names a known asset status.
func ValidAssetStatus(s string) bool {
	switch s {
	case AssetOperational, AssetMaintenance, AssetRetired, AssetLost, AssetDamaged:
		return true
	}
	return false
}

// AssetCategory represents asset_categories table
type AssetCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"uniqueIndex;size:100;not null" json:"category_name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AssetCategory) TableName() string {
	return "asset_categories"
}

// Asset represents assets table
type Asset struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	AssetTag       string        `gorm:"uniqueIndex;size:50;not null" json:"asset_tag"`
	AssetName      string        `gorm:"size:100;not null" json:"asset_name"`
	SerialNumber   string        `gorm:"uniqueIndex;size:100" json:"serial_number"`
	CategoryID     uint          `gorm:"index" json:"category_id"`
	Category       AssetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Manufacturer   string        `gorm:"size:100" json:"manufacturer"`
	Model          string        `gorm:"size:100" json:"model"`
	PurchaseDate   string        `gorm:"size:10" json:"purchase_date"`
	WarrantyExpiry string        `gorm:"size:10" json:"warranty_expiry"`
	Location       string        `gorm:"size:100" json:"location"`
	PurchaseCost   float64       `gorm:"type:decimal(12,2);default:0" json:"purchase_cost"`
	Status         string        `gorm:"size:20;default:'operational'" json:"status"`
	CreatedByID    uint          `gorm:"index" json:"created_by_id"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// MaintenanceRecord represents asset_maintenance table
type MaintenanceRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AssetID         uint      `gorm:"index;not null" json:"asset_id"`
	Asset           Asset     `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	MaintenanceDate string    `gorm:"size:10;not null" json:"maintenance_date"`
	MaintenanceType string    `gorm:"size:50;not null" json:"maintenance_type"`
	Description     string    `gorm:"type:text" json:"description"`
	Cost            float64   `gorm:"type:decimal(10,2);default:0" json:"cost"`
	PerformedBy     string    `gorm:"size:100" json:"performed_by"`
	NextDueDate     string    `gorm:"size:10" json:"next_due_date"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedByID     uint      `gorm:"index" json:"created_by_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MaintenanceRecord) TableName() string {
	return "asset_maintenance"
}

// ConsumableCategory represents consumable_categories table
type ConsumableCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"uniqueIndex;size:100;not null" json:"category_name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ConsumableCategory) TableName() string {
	return "consumable_categories"
}

// Consumable represents consumables table
type Consumable struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	Name         string             `gorm:"size:100;not null" json:"name"`
	Description  string             `gorm:"type:text" json:"description"`
	CategoryID   uint               `gorm:"index" json:"category_id"`
	Category     ConsumableCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit         string             `gorm:"size:20;not null" json:"unit"`
	UnitCost     float64            `gorm:"type:decimal(10,2);default:0" json:"unit_cost"`
	ReorderLevel int                `gorm:"default:10" json:"reorder_level"`
	MaximumStock int                `gorm:"default:100" json:"maximum_stock"`
	IsActive     bool               `gorm:"default:true" json:"is_active"`
	CreatedByID  uint               `gorm:"index" json:"created_by_id"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Consumable) TableName() string {
	return "consumables"
}

// Supplier represents suppliers table
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SupplierName  string    `gorm:"size:100;not null" json:"supplier_name"`
	ContactPerson string    `gorm:"size:100" json:"contact_person"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Email         string    `gorm:"size:100" json:"email"`
	Address       string    `gorm:"type:text" json:"address"`
	TaxNumber     string    `gorm:"size:50" json:"tax_number"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// StockBatch represents inventory_stock table. Each row is a received
// shipment batch of a consumable.
type StockBatch struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ConsumableID     uint       `gorm:"index;not null" json:"consumable_id"`
	Consumable       Consumable `gorm:"foreignKey:ConsumableID" json:"consumable,omitempty"`
	BatchNumber      string     `gorm:"size:50;not null" json:"batch_number"`
	SupplierID       uint       `gorm:"index" json:"supplier_id"`
	QuantityReceived int        `gorm:"not null" json:"quantity_received"`
	QuantityCurrent  int        `gorm:"not null" json:"quantity_current"`
	QuantityUsed     int        `gorm:"default:0" json:"quantity_used"`
	UnitCost         float64    `gorm:"type:decimal(10,2)" json:"unit_cost"`
	TotalCost        float64    `gorm:"type:decimal(12,2)" json:"total_cost"`
	ManufactureDate  string     `gorm:"size:10" json:"manufacture_date"`
	ExpiryDate       string     `gorm:"size:10;index" json:"expiry_date"`
	ReceivedDate     string     `gorm:"size:10" json:"received_date"`
	Location         string     `gorm:"size:100;default:'Main Store'" json:"location"`
	Status           string     `gorm:"size:20;default:'Active'" json:"status"`
	ReceivedByID     uint       `gorm:"index" json:"received_by_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockBatch) TableName() string {
	return "inventory_stock"
}

// StockAdjustment represents stock_adjustment_log table
type StockAdjustment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StockID        uint      `gorm:"index;not null" json:"stock_id"`
	Adjustment     int       `gorm:"not null" json:"adjustment"`
	Reason         string    `gorm:"type:text" json:"reason"`
	AdjustedByID   uint      `gorm:"index" json:"adjusted_by_id"`
	AdjustmentDate time.Time `gorm:"autoCreateTime" json:"adjustment_date"`
}

func (StockAdjustment) TableName() string {
	return "stock_adjustment_log"
}

// InventoryAlert represents inventory_alerts table. Rows are produced by
// the daily scan and cleared when acknowledged.
type InventoryAlert struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AlertType      string     `gorm:"size:30;not null;index" json:"alert_type"`
	ConsumableID   uint       `gorm:"index" json:"consumable_id"`
	StockID        *uint      `gorm:"index" json:"stock_id"`
	Message        string     `gorm:"type:text" json:"message"`
	IsAcknowledged bool       `gorm:"default:false;index" json:"is_acknowledged"`
	AcknowledgedBy *uint      `json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (InventoryAlert) TableName() string {
	return "inventory_alerts"
}
