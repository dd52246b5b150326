package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// DashboardService aggregates counts for the admin dashboard.
// It queries across tables, so it takes the DB handle directly
// instead of going through the repositories.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats represents dashboard summary data
type DashboardStats struct {
	ActivePatients       int64 `json:"active_patients"`
	VisitsToday          int64 `json:"visits_today"`
	OpenVisits           int64 `json:"open_visits"`
	PendingReferrals     int64 `json:"pending_referrals"`
	OperationalAssets    int64 `json:"operational_assets"`
	UnacknowledgedAlerts int64 `json:"unacknowledged_alerts"`
	AppointmentsToday    int64 `json:"appointments_today"`
	ActiveRoutes         int64 `json:"active_routes"`
	AuditEntries24h      int64 `json:"audit_entries_24h"`
}

// GetStats collects dashboard counters
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)
	today := time.Now().UTC().Format("2006-01-02")

	if err := db.Model(&models.Patient{}).
		Where("is_active = ?", true).Count(&stats.ActivePatients).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Visit{}).
		Where("visit_date = ? AND is_active = ?", today, true).Count(&stats.VisitsToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Visit{}).
		Where("current_stage <> ? AND is_active = ?", models.StageClosure, true).
		Count(&stats.OpenVisits).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Referral{}).
		Where("referral_status = ? AND is_active = ?", models.ReferralPending, true).
		Count(&stats.PendingReferrals).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Asset{}).
		Where("status = ?", models.AssetOperational).Count(&stats.OperationalAssets).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.InventoryAlert{}).
		Where("is_acknowledged = ?", false).Count(&stats.UnacknowledgedAlerts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Appointment{}).
		Where("appointment_date = ? AND appointment_status IN ?", today,
			[]string{models.AppointmentConfirmed, models.AppointmentPending}).
		Count(&stats.AppointmentsToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Route{}).
		Where("is_active = ?", true).Count(&stats.ActiveRoutes).Error; err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	if err := db.Model(&models.AuditLog{}).
		Where("timestamp >= ?", since).Count(&stats.AuditEntries24h).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
