package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// AuditService records who did what to which record
type AuditService struct {
	auditRepo repositories.AuditRepository
	log       zerolog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		log:       logger.Get(),
	}
}

// AuditEntry describes one recorded action
type AuditEntry struct {
	UserID     uint
	Action     string
	EntityType string
	EntityID   uint
	Detail     map[string]string
	IPAddress  string
	UserAgent  string
}

// Record appends an audit entry. A failed write never fails the request
// that triggered it; the failure is logged and the caller proceeds.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	details := ""
	if len(entry.Detail) > 0 {
		encoded, err := json.Marshal(entry.Detail)
		if err != nil {
			s.log.Error().Err(err).
				Str("action", entry.Action).
				Str("entity_type", entry.EntityType).
				Msg("audit detail encoding failed")
		} else {
			details = string(encoded)
		}
	}

	row := &models.AuditLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}

	if err := s.auditRepo.Create(ctx, row); err != nil {
		s.log.Error().Err(err).
			Uint("user_id", entry.UserID).
			Str("action", entry.Action).
			Str("entity_type", entry.EntityType).
			Uint("entity_id", entry.EntityID).
			Msg("audit write failed")
	}
}

// List returns audit entries matching the filter, newest first
func (s *AuditService) List(ctx context.Context, filter repositories.AuditFilter, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, filter, offset, limit)
}

// CountSince counts entries recorded in the trailing window ending now
func (s *AuditService) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.auditRepo.CountSince(ctx, since)
}
