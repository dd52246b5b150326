package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
)

type stubInventoryRepo struct {
	consumables  []*models.Consumable
	stock        map[uint]int
	batches      []*models.StockBatch
	alerts       []*models.InventoryAlert
	assets       map[uint]*models.Asset
	maintenance  []*models.MaintenanceRecord
	warrantyFrom string
	warrantyTo   string
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		stock:  make(map[uint]int),
		assets: make(map[uint]*models.Asset),
	}
}

func (r *stubInventoryRepo) CreateAsset(ctx context.Context, asset *models.Asset) error { return nil }
func (r *stubInventoryRepo) GetAssetByID(ctx context.Context, id uint) (*models.Asset, error) {
	if asset, ok := r.assets[id]; ok {
		return asset, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubInventoryRepo) ExistsAssetBySerial(ctx context.Context, serial string) (bool, error) {
	return false, nil
}
func (r *stubInventoryRepo) UpdateAsset(ctx context.Context, asset *models.Asset) error { return nil }
func (r *stubInventoryRepo) ListAssets(ctx context.Context, filter repositories.AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	return nil, 0, nil
}
func (r *stubInventoryRepo) ListAssetCategories(ctx context.Context) ([]*models.AssetCategory, error) {
	return nil, nil
}
func (r *stubInventoryRepo) ListAssetsWarrantyExpiring(ctx context.Context, from, to string) ([]*models.Asset, error) {
	r.warrantyFrom = from
	r.warrantyTo = to
	var expiring []*models.Asset
	for _, asset := range r.assets {
		if asset.WarrantyExpiry != "" && asset.WarrantyExpiry >= from && asset.WarrantyExpiry <= to {
			expiring = append(expiring, asset)
		}
	}
	return expiring, nil
}
func (r *stubInventoryRepo) CreateMaintenanceRecord(ctx context.Context, record *models.MaintenanceRecord) error {
	record.ID = uint(len(r.maintenance) + 1)
	r.maintenance = append(r.maintenance, record)
	return nil
}
func (r *stubInventoryRepo) ListMaintenanceByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	var records []*models.MaintenanceRecord
	for _, record := range r.maintenance {
		if record.AssetID == assetID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *stubInventoryRepo) CreateConsumable(ctx context.Context, consumable *models.Consumable) error {
	return nil
}
func (r *stubInventoryRepo) GetConsumableByID(ctx context.Context, id uint) (*models.Consumable, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubInventoryRepo) UpdateConsumable(ctx context.Context, consumable *models.Consumable) error {
	return nil
}
func (r *stubInventoryRepo) DeactivateConsumable(ctx context.Context, id uint) error { return nil }
func (r *stubInventoryRepo) ListConsumables(ctx context.Context, categoryID uint, offset, limit int) ([]*models.Consumable, int64, error) {
	return nil, 0, nil
}
func (r *stubInventoryRepo) ListActiveConsumables(ctx context.Context) ([]*models.Consumable, error) {
	return r.consumables, nil
}
func (r *stubInventoryRepo) ListConsumableCategories(ctx context.Context) ([]*models.ConsumableCategory, error) {
	return nil, nil
}

func (r *stubInventoryRepo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return nil
}
func (r *stubInventoryRepo) GetSupplierByID(ctx context.Context, id uint) (*models.Supplier, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubInventoryRepo) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return nil
}
func (r *stubInventoryRepo) ListSuppliers(ctx context.Context, offset, limit int) ([]*models.Supplier, int64, error) {
	return nil, 0, nil
}

func (r *stubInventoryRepo) CreateBatch(ctx context.Context, batch *models.StockBatch) error {
	return nil
}
func (r *stubInventoryRepo) GetBatchByID(ctx context.Context, id uint) (*models.StockBatch, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubInventoryRepo) UpdateBatch(ctx context.Context, batch *models.StockBatch) error {
	return nil
}
func (r *stubInventoryRepo) ListBatchesByConsumable(ctx context.Context, consumableID uint) ([]*models.StockBatch, error) {
	return nil, nil
}
func (r *stubInventoryRepo) ListBatchesExpiringBefore(ctx context.Context, date string) ([]*models.StockBatch, error) {
	var expiring []*models.StockBatch
	for _, batch := range r.batches {
		if batch.ExpiryDate < date {
			expiring = append(expiring, batch)
		}
	}
	return expiring, nil
}
func (r *stubInventoryRepo) TotalStock(ctx context.Context, consumableID uint) (int, error) {
	return r.stock[consumableID], nil
}
func (r *stubInventoryRepo) CreateAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error {
	return nil
}

func (r *stubInventoryRepo) CreateAlert(ctx context.Context, alert *models.InventoryAlert) error {
	r.alerts = append(r.alerts, alert)
	return nil
}
func (r *stubInventoryRepo) ListAlerts(ctx context.Context, unacknowledgedOnly bool, offset, limit int) ([]*models.InventoryAlert, int64, error) {
	return r.alerts, int64(len(r.alerts)), nil
}
func (r *stubInventoryRepo) AcknowledgeAlert(ctx context.Context, id, userID uint) error { return nil }
func (r *stubInventoryRepo) ExistsOpenAlert(ctx context.Context, alertType string, consumableID uint, stockID *uint) (bool, error) {
	for _, alert := range r.alerts {
		if alert.IsAcknowledged || alert.AlertType != alertType || alert.ConsumableID != consumableID {
			continue
		}
		if (alert.StockID == nil) != (stockID == nil) {
			continue
		}
		if stockID == nil || *alert.StockID == *stockID {
			return true, nil
		}
	}
	return false, nil
}

func TestScanRaisesLowStockAlert(t *testing.T) {
	repo := newStubInventoryRepo()
	repo.consumables = []*models.Consumable{
		{ID: 1, Name: "Paracetamol 500mg", Unit: "tablets", ReorderLevel: 10, IsActive: true},
		{ID: 2, Name: "Gloves", Unit: "boxes", ReorderLevel: 5, IsActive: true},
	}
	repo.stock[1] = 4  // below reorder level
	repo.stock[2] = 50 // plenty

	svc := NewAlertCronService(repo, "30 6 * * *")
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(repo.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(repo.alerts))
	}
	alert := repo.alerts[0]
	if alert.AlertType != models.AlertLowStock || alert.ConsumableID != 1 {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	if !strings.Contains(alert.Message, "Paracetamol 500mg") {
		t.Fatalf("expected message to name the consumable: %q", alert.Message)
	}
}

func TestScanDoesNotDuplicateOpenAlerts(t *testing.T) {
	repo := newStubInventoryRepo()
	repo.consumables = []*models.Consumable{
		{ID: 1, Name: "Paracetamol 500mg", Unit: "tablets", ReorderLevel: 10, IsActive: true},
	}
	repo.stock[1] = 2

	svc := NewAlertCronService(repo, "30 6 * * *")
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("second scan: %v", err)
	}

	if len(repo.alerts) != 1 {
		t.Fatalf("expected the open alert not to be raised again, got %d", len(repo.alerts))
	}
}

func TestScanFlagsExpiringAndExpiredBatches(t *testing.T) {
	repo := newStubInventoryRepo()
	today := time.Now().UTC()

	repo.batches = []*models.StockBatch{
		{
			ID:              1,
			ConsumableID:    1,
			Consumable:      models.Consumable{ID: 1, Name: "Insulin"},
			BatchNumber:     "B-001",
			ExpiryDate:      today.AddDate(0, 0, 10).Format("2006-01-02"),
			QuantityCurrent: 20,
		},
		{
			ID:              2,
			ConsumableID:    1,
			Consumable:      models.Consumable{ID: 1, Name: "Insulin"},
			BatchNumber:     "B-002",
			ExpiryDate:      today.AddDate(0, 0, -3).Format("2006-01-02"),
			QuantityCurrent: 5,
		},
	}

	svc := NewAlertCronService(repo, "30 6 * * *")
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(repo.alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(repo.alerts))
	}

	byBatch := make(map[uint]string)
	for _, alert := range repo.alerts {
		if alert.StockID == nil {
			t.Fatalf("expected batch alert to carry a stock id: %+v", alert)
		}
		byBatch[*alert.StockID] = alert.AlertType
	}
	if byBatch[1] != models.AlertExpiringStock {
		t.Fatalf("expected batch 1 to be expiring, got %q", byBatch[1])
	}
	if byBatch[2] != models.AlertExpiredStock {
		t.Fatalf("expected batch 2 to be expired, got %q", byBatch[2])
	}
}
