package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// clinicalRepository implements ClinicalRepository interface
type clinicalRepository struct {
	db *gorm.DB
}

// NewClinicalRepository creates a new clinical workflow repository
func NewClinicalRepository(db *gorm.DB) ClinicalRepository {
	return &clinicalRepository{db: db}
}

// CreateVisit creates a new visit
func (r *clinicalRepository) CreateVisit(ctx context.Context, visit *models.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

// GetVisitByID gets an active visit by ID with patient preloaded
func (r *clinicalRepository) GetVisitByID(ctx context.Context, id uint) (*models.Visit, error) {
	var visit models.Visit
	err := r.db.WithContext(ctx).Preload("Patient").
		Where("id = ? AND is_active = ?", id, true).First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// ListVisits lists active visits, newest first
func (r *clinicalRepository) ListVisits(ctx context.Context, filter VisitFilter, offset, limit int) ([]*models.Visit, int64, error) {
	var visits []*models.Visit
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Visit{}).Where("is_active = ?", true)
	if filter.PatientID > 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Stage != "" {
		query = query.Where("current_stage = ?", filter.Stage)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Patient").Order("visit_date DESC, id DESC").
		Offset(offset).Limit(limit).Find(&visits).Error; err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

// UpdateVisitStage moves a visit to a new workflow stage
func (r *clinicalRepository) UpdateVisitStage(ctx context.Context, id uint, stage string) error {
	result := r.db.WithContext(ctx).Model(&models.Visit{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"current_stage": stage, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateVitalSigns records vital signs for a visit
func (r *clinicalRepository) CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error {
	return r.db.WithContext(ctx).Create(vitals).Error
}

// ListVitalSignsByVisit lists vital sign records for a visit, newest first
func (r *clinicalRepository) ListVitalSignsByVisit(ctx context.Context, visitID uint) ([]*models.VitalSigns, error) {
	var vitals []*models.VitalSigns
	err := r.db.WithContext(ctx).Where("visit_id = ?", visitID).
		Order("recorded_at DESC").Find(&vitals).Error
	return vitals, err
}

// CreateNote creates a clinical note
func (r *clinicalRepository) CreateNote(ctx context.Context, note *models.ClinicalNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// ListNotesByVisit lists clinical notes for a visit, newest first
func (r *clinicalRepository) ListNotesByVisit(ctx context.Context, visitID uint) ([]*models.ClinicalNote, error) {
	var notes []*models.ClinicalNote
	err := r.db.WithContext(ctx).Where("visit_id = ?", visitID).
		Order("created_at DESC").Find(&notes).Error
	return notes, err
}

// CreatePrescription creates a prescription
func (r *clinicalRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

// ListPrescriptionsByVisit lists active prescriptions for a visit, newest first
func (r *clinicalRepository) ListPrescriptionsByVisit(ctx context.Context, visitID uint) ([]*models.Prescription, error) {
	var prescriptions []*models.Prescription
	err := r.db.WithContext(ctx).Where("visit_id = ? AND is_active = ?", visitID, true).
		Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

// CreateReferral creates a referral
func (r *clinicalRepository) CreateReferral(ctx context.Context, referral *models.Referral) error {
	return r.db.WithContext(ctx).Create(referral).Error
}

// GetReferralByID gets an active referral by ID
func (r *clinicalRepository) GetReferralByID(ctx context.Context, id uint) (*models.Referral, error) {
	var referral models.Referral
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&referral).Error
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

// ListReferrals lists active referrals, newest first
func (r *clinicalRepository) ListReferrals(ctx context.Context, status string, offset, limit int) ([]*models.Referral, int64, error) {
	var referrals []*models.Referral
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Referral{}).Where("is_active = ?", true)
	if status != "" {
		query = query.Where("referral_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&referrals).Error; err != nil {
		return nil, 0, err
	}

	return referrals, total, nil
}

// UpdateReferralStatus updates a referral's status
func (r *clinicalRepository) UpdateReferralStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"referral_status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
