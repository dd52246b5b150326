package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
)

type stubAuditRepo struct {
	entries    []*models.AuditLog
	failCreate bool
}

func (r *stubAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if r.failCreate {
		return errors.New("audit table unavailable")
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) List(ctx context.Context, filter repositories.AuditFilter, offset, limit int) ([]*models.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *stubAuditRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(r.entries)), nil
}

func TestRecordWritesEntry(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)

	svc.Record(context.Background(), AuditEntry{
		UserID:     5,
		Action:     models.ActionUpdate,
		EntityType: "patient",
		EntityID:   12,
		Detail:     map[string]string{"field": "phone_number"},
		IPAddress:  "10.0.0.1",
		UserAgent:  "test-agent",
	})

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.UserID != 5 || entry.Action != models.ActionUpdate || entry.EntityType != "patient" || entry.EntityID != 12 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	var detail map[string]string
	if err := json.Unmarshal([]byte(entry.Details), &detail); err != nil {
		t.Fatalf("details not valid JSON: %v", err)
	}
	if detail["field"] != "phone_number" {
		t.Fatalf("unexpected detail: %v", detail)
	}
}

func TestRecordEmptyDetail(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)

	svc.Record(context.Background(), AuditEntry{
		UserID: 1,
		Action: models.ActionLogout,
	})

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Details != "" {
		t.Fatalf("expected empty details, got %q", repo.entries[0].Details)
	}
}

// A failed audit write must never surface to the caller.
func TestRecordSwallowsRepositoryFailure(t *testing.T) {
	repo := &stubAuditRepo{failCreate: true}
	svc := NewAuditService(repo)

	svc.Record(context.Background(), AuditEntry{
		UserID:     1,
		Action:     models.ActionCreate,
		EntityType: "patient",
	})

	if len(repo.entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(repo.entries))
	}
}
