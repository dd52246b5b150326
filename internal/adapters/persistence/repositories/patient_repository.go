package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// patientRepository implements PatientRepository interface
type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

// Create creates a new patient
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// GetByID gets an active patient by ID
func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetByMedicalAidNumber gets an active patient by medical aid number
func (r *patientRepository) GetByMedicalAidNumber(ctx context.Context, number string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("medical_aid_number = ? AND is_active = ?", number, true).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// ExistsByMedicalAidNumber checks if medical aid number is taken
func (r *patientRepository) ExistsByMedicalAidNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("medical_aid_number = ?", number).Count(&count).Error
	return count > 0, err
}

// Update updates a patient
func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// Deactivate marks a patient inactive. Rows are never deleted.
func (r *patientRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()}).Error
}

// List lists active patients with optional search and province filter
func (r *patientRepository) List(ctx context.Context, filter PatientFilter, offset, limit int) ([]*models.Patient, int64, error) {
	var patients []*models.Patient
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Patient{}).Where("is_active = ?", true)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR medical_aid_number LIKE ?",
			like, like, like,
		)
	}
	if filter.Province != "" {
		query = query.Where("province = ?", filter.Province)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("last_name, first_name").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}
