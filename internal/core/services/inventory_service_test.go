package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

func TestAddMaintenanceUnknownAsset(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo, NewAuditService(&stubAuditRepo{}))

	_, err := svc.AddMaintenance(context.Background(), 42, &AddMaintenanceInput{
		MaintenanceDate: "2026-08-01",
		MaintenanceType: "repair",
	}, 1, RequestMeta{})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAddMaintenanceRecordsAudit(t *testing.T) {
	repo := newStubInventoryRepo()
	audit := &stubAuditRepo{}
	svc := NewInventoryService(repo, NewAuditService(audit))
	repo.assets[7] = &models.Asset{ID: 7, AssetTag: "AST-20260101120000", AssetName: "ECG Monitor"}

	record, err := svc.AddMaintenance(context.Background(), 7, &AddMaintenanceInput{
		MaintenanceDate: "2026-08-15",
		MaintenanceType: "calibration",
		PerformedBy:     "MedTech Services",
		Cost:            1250,
	}, 3, RequestMeta{IPAddress: "10.0.0.5"})
	if err != nil {
		t.Fatalf("add maintenance: %v", err)
	}

	if record.AssetID != 7 || record.CreatedByID != 3 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != models.ActionCreate || entry.EntityType != "asset_maintenance" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}

	history, err := svc.ListMaintenance(context.Background(), 7)
	if err != nil {
		t.Fatalf("list maintenance: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 maintenance record, got %d", len(history))
	}
}

func TestListWarrantyAlertsWindow(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo, NewAuditService(&stubAuditRepo{}))

	today := time.Now().UTC()
	repo.assets[1] = &models.Asset{ID: 1, AssetName: "Defibrillator",
		WarrantyExpiry: today.AddDate(0, 0, 14).Format("2006-01-02")}
	repo.assets[2] = &models.Asset{ID: 2, AssetName: "Wheelchair",
		WarrantyExpiry: today.AddDate(0, 0, 90).Format("2006-01-02")}
	repo.assets[3] = &models.Asset{ID: 3, AssetName: "Old Scale",
		WarrantyExpiry: today.AddDate(0, 0, -5).Format("2006-01-02")}
	repo.assets[4] = &models.Asset{ID: 4, AssetName: "No Warranty"}

	// Zero falls back to the 30 day default
	assets, err := svc.ListWarrantyAlerts(context.Background(), 0)
	if err != nil {
		t.Fatalf("warranty alerts: %v", err)
	}
	if len(assets) != 1 || assets[0].ID != 1 {
		t.Fatalf("expected only the asset expiring in 14 days, got %d", len(assets))
	}
	if repo.warrantyFrom != today.Format("2006-01-02") {
		t.Fatalf("expected window to start today, got %q", repo.warrantyFrom)
	}
	if repo.warrantyTo != today.AddDate(0, 0, 30).Format("2006-01-02") {
		t.Fatalf("expected 30 day window, got %q", repo.warrantyTo)
	}

	// A wider window picks up the later expiry too
	assets, err = svc.ListWarrantyAlerts(context.Background(), 120)
	if err != nil {
		t.Fatalf("warranty alerts: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets inside 120 days, got %d", len(assets))
	}
}
