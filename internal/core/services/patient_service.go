package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Patient errors
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrMedicalAidInUse = errors.New("patient with this medical aid number already exists")
)

// PatientService handles patient administration
type PatientService struct {
	patientRepo repositories.PatientRepository
	audit       *AuditService
	log         zerolog.Logger
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository, audit *AuditService) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		audit:       audit,
		log:         logger.Get(),
	}
}

// CreatePatientInput represents patient registration input
type CreatePatientInput struct {
	FirstName          string   `json:"first_name" validate:"required"`
	LastName           string   `json:"last_name" validate:"required"`
	DateOfBirth        string   `json:"date_of_birth" validate:"required"`
	Gender             string   `json:"gender"`
	PhoneNumber        string   `json:"phone_number"`
	Email              string   `json:"email" validate:"omitempty,email"`
	MedicalAidNumber   string   `json:"medical_aid_number" validate:"required"`
	Province           string   `json:"province"`
	PhysicalAddress    string   `json:"physical_address"`
	IsPalmedMember     bool     `json:"is_palmed_member"`
	ChronicConditions  []string `json:"chronic_conditions"`
	Allergies          []string `json:"allergies"`
	CurrentMedications []string `json:"current_medications"`
}

// UpdatePatientInput represents a partial patient update. Nil fields are unchanged.
type UpdatePatientInput struct {
	FirstName          *string  `json:"first_name"`
	LastName           *string  `json:"last_name"`
	PhoneNumber        *string  `json:"phone_number"`
	Email              *string  `json:"email"`
	Province           *string  `json:"province"`
	PhysicalAddress    *string  `json:"physical_address"`
	ChronicConditions  []string `json:"chronic_conditions"`
	Allergies          []string `json:"allergies"`
	CurrentMedications []string `json:"current_medications"`
}

// CreatePatient registers a new patient
func (s *PatientService) CreatePatient(ctx context.Context, input *CreatePatientInput, actorID uint, meta RequestMeta) (*models.Patient, error) {
	// 1. Medical aid numbers are unique across active and inactive patients
	exists, err := s.patientRepo.ExistsByMedicalAidNumber(ctx, input.MedicalAidNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMedicalAidInUse
	}

	// 2. Create
	patient := &models.Patient{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		PhoneNumber:        input.PhoneNumber,
		Email:              input.Email,
		MedicalAidNumber:   input.MedicalAidNumber,
		Province:           input.Province,
		PhysicalAddress:    input.PhysicalAddress,
		IsPalmedMember:     input.IsPalmedMember,
		ChronicConditions:  strings.Join(input.ChronicConditions, ","),
		Allergies:          strings.Join(input.Allergies, ","),
		CurrentMedications: strings.Join(input.CurrentMedications, ","),
		CreatedByID:        actorID,
		IsActive:           true,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	// 3. Audit
	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "patient",
		EntityID:   patient.ID,
		Detail:     map[string]string{"name": patient.FirstName + " " + patient.LastName},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("patient_id", patient.ID).Msg("patient registered")

	return patient, nil
}

// GetPatient gets an active patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// UpdatePatient applies a partial update
func (s *PatientService) UpdatePatient(ctx context.Context, id uint, input *UpdatePatientInput, actorID uint, meta RequestMeta) (*models.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]string{}
	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
		changed["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
		changed["last_name"] = *input.LastName
	}
	if input.PhoneNumber != nil {
		patient.PhoneNumber = *input.PhoneNumber
		changed["phone_number"] = *input.PhoneNumber
	}
	if input.Email != nil {
		patient.Email = *input.Email
		changed["email"] = *input.Email
	}
	if input.Province != nil {
		patient.Province = *input.Province
		changed["province"] = *input.Province
	}
	if input.PhysicalAddress != nil {
		patient.PhysicalAddress = *input.PhysicalAddress
		changed["physical_address"] = *input.PhysicalAddress
	}
	if input.ChronicConditions != nil {
		patient.ChronicConditions = strings.Join(input.ChronicConditions, ",")
		changed["chronic_conditions"] = patient.ChronicConditions
	}
	if input.Allergies != nil {
		patient.Allergies = strings.Join(input.Allergies, ",")
		changed["allergies"] = patient.Allergies
	}
	if input.CurrentMedications != nil {
		patient.CurrentMedications = strings.Join(input.CurrentMedications, ",")
		changed["current_medications"] = patient.CurrentMedications
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "patient",
		EntityID:   patient.ID,
		Detail:     changed,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return patient, nil
}

// DeactivatePatient marks a patient record inactive. Records are kept,
// clinical history must survive.
func (s *PatientService) DeactivatePatient(ctx context.Context, id, actorID uint, meta RequestMeta) error {
	if _, err := s.GetPatient(ctx, id); err != nil {
		return err
	}
	if err := s.patientRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionDeactivate,
		EntityType: "patient",
		EntityID:   id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("patient_id", id).Msg("patient deactivated")

	return nil
}

// ListPatients lists active patients with search and pagination
func (s *PatientService) ListPatients(ctx context.Context, filter repositories.PatientFilter, offset, limit int) ([]*models.Patient, int64, error) {
	return s.patientRepo.List(ctx, filter, offset, limit)
}
