package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Clinical workflow errors
var (
	ErrVisitNotFound         = errors.New("visit not found")
	ErrReferralNotFound      = errors.New("referral not found")
	ErrInvalidStage          = errors.New("invalid stage")
	ErrInvalidReferralStatus = errors.New("invalid referral status")
)

// ClinicalService handles visits, vitals, notes, prescriptions and referrals
type ClinicalService struct {
	clinicalRepo repositories.ClinicalRepository
	patientRepo  repositories.PatientRepository
	audit        *AuditService
	log          zerolog.Logger
}

// NewClinicalService creates a new clinical service
func NewClinicalService(
	clinicalRepo repositories.ClinicalRepository,
	patientRepo repositories.PatientRepository,
	audit *AuditService,
) *ClinicalService {
	return &ClinicalService{
		clinicalRepo: clinicalRepo,
		patientRepo:  patientRepo,
		audit:        audit,
		log:          logger.Get(),
	}
}

// CreateVisitInput represents visit intake input
type CreateVisitInput struct {
	PatientID      uint   `json:"patient_id" validate:"required"`
	VisitDate      string `json:"visit_date" validate:"required"`
	VisitTime      string `json:"visit_time"`
	VisitType      string `json:"visit_type" validate:"required"`
	ChiefComplaint string `json:"chief_complaint"`
	RouteID        *uint  `json:"route_id"`
	LocationID     *uint  `json:"location_id"`
}

// RecordVitalsInput represents a vital signs reading
type RecordVitalsInput struct {
	SystolicBP       *int     `json:"systolic_bp"`
	DiastolicBP      *int     `json:"diastolic_bp"`
	HeartRate        *int     `json:"heart_rate"`
	Temperature      *float64 `json:"temperature"`
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	OxygenSaturation *int     `json:"oxygen_saturation"`
	BloodGlucose     *float64 `json:"blood_glucose"`
	NursingNotes     string   `json:"nursing_notes"`
}

// AddNoteInput represents a clinical note
type AddNoteInput struct {
	NoteContent string   `json:"note_content" validate:"required"`
	NoteType    string   `json:"note_type"`
	ICD10Codes  []string `json:"icd10_codes"`
}

// AddPrescriptionInput represents a prescription
type AddPrescriptionInput struct {
	DrugID              uint   `json:"drug_id" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	Frequency           string `json:"frequency" validate:"required"`
	DurationDays        int    `json:"duration_days"`
	SpecialInstructions string `json:"special_instructions"`
}

// CreateReferralInput represents a referral
type CreateReferralInput struct {
	PatientID        uint   `json:"patient_id" validate:"required"`
	ReferralType     string `json:"referral_type" validate:"required"`
	FromStage        string `json:"from_stage"`
	ToStage          string `json:"to_stage"`
	ExternalProvider string `json:"external_provider"`
	Department       string `json:"department"`
	Reason           string `json:"reason" validate:"required"`
	Urgency          string `json:"urgency"`
	AppointmentDate  string `json:"appointment_date"`
}

// VisitDetail bundles a visit with its clinical records
type VisitDetail struct {
	Visit         *models.Visit          `json:"visit"`
	VitalSigns    []*models.VitalSigns   `json:"vital_signs"`
	ClinicalNotes []*models.ClinicalNote `json:"clinical_notes"`
	Prescriptions []*models.Prescription `json:"prescriptions"`
}

// CreateVisit opens a visit at the registration stage
func (s *ClinicalService) CreateVisit(ctx context.Context, input *CreateVisitInput, actorID uint, meta RequestMeta) (*models.Visit, error) {
	// 1. Patient must exist and be active
	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	// 2. Create at registration
	visit := &models.Visit{
		PatientID:      input.PatientID,
		VisitDate:      input.VisitDate,
		VisitTime:      input.VisitTime,
		VisitType:      input.VisitType,
		ChiefComplaint: input.ChiefComplaint,
		CurrentStage:   models.StageRegistration,
		RouteID:        input.RouteID,
		LocationID:     input.LocationID,
		CreatedByID:    actorID,
		IsActive:       true,
	}
	if visit.VisitTime == "" {
		visit.VisitTime = "09:00"
	}
	if err := s.clinicalRepo.CreateVisit(ctx, visit); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "visit",
		EntityID:   visit.ID,
		Detail:     map[string]string{"patient_id": fmt.Sprint(input.PatientID)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("visit_id", visit.ID).Uint("patient_id", input.PatientID).Msg("visit opened")

	return visit, nil
}

// GetVisit returns a visit with its vital signs, notes and prescriptions
func (s *ClinicalService) GetVisit(ctx context.Context, id uint) (*VisitDetail, error) {
	visit, err := s.clinicalRepo.GetVisitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	vitals, err := s.clinicalRepo.ListVitalSignsByVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	notes, err := s.clinicalRepo.ListNotesByVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.clinicalRepo.ListPrescriptionsByVisit(ctx, id)
	if err != nil {
		return nil, err
	}

	return &VisitDetail{
		Visit:         visit,
		VitalSigns:    vitals,
		ClinicalNotes: notes,
		Prescriptions: prescriptions,
	}, nil
}

// ListVisits lists visits with filters and pagination
func (s *ClinicalService) ListVisits(ctx context.Context, filter repositories.VisitFilter, offset, limit int) ([]*models.Visit, int64, error) {
	if filter.Stage != "" && !models.ValidStage(filter.Stage) {
		return nil, 0, ErrInvalidStage
	}
	return s.clinicalRepo.ListVisits(ctx, filter, offset, limit)
}

// UpdateVisitStage moves a visit to another workflow stage
func (s *ClinicalService) UpdateVisitStage(ctx context.Context, visitID uint, stage string, actorID uint, meta RequestMeta) error {
	if !models.ValidStage(stage) {
		return ErrInvalidStage
	}

	if err := s.clinicalRepo.UpdateVisitStage(ctx, visitID, stage); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVisitNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "visit",
		EntityID:   visitID,
		Detail:     map[string]string{"stage": stage},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// RecordVitalSigns records a vitals reading against a visit
func (s *ClinicalService) RecordVitalSigns(ctx context.Context, visitID uint, input *RecordVitalsInput, actorID uint, meta RequestMeta) (*models.VitalSigns, error) {
	if _, err := s.clinicalRepo.GetVisitByID(ctx, visitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	vitals := &models.VitalSigns{
		VisitID:          visitID,
		SystolicBP:       input.SystolicBP,
		DiastolicBP:      input.DiastolicBP,
		HeartRate:        input.HeartRate,
		Temperature:      input.Temperature,
		Weight:           input.Weight,
		Height:           input.Height,
		OxygenSaturation: input.OxygenSaturation,
		BloodGlucose:     input.BloodGlucose,
		NursingNotes:     input.NursingNotes,
		RecordedByID:     actorID,
	}
	if err := s.clinicalRepo.CreateVitalSigns(ctx, vitals); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "vital_signs",
		EntityID:   vitals.ID,
		Detail:     map[string]string{"visit_id": fmt.Sprint(visitID)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return vitals, nil
}

// AddNote attaches a clinical note to a visit
func (s *ClinicalService) AddNote(ctx context.Context, visitID uint, input *AddNoteInput, actorID uint, meta RequestMeta) (*models.ClinicalNote, error) {
	if _, err := s.clinicalRepo.GetVisitByID(ctx, visitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	noteType := input.NoteType
	if noteType == "" {
		noteType = "general"
	}

	note := &models.ClinicalNote{
		VisitID:     visitID,
		NoteContent: input.NoteContent,
		NoteType:    noteType,
		ICD10Codes:  strings.Join(input.ICD10Codes, ","),
		CreatedByID: actorID,
	}
	if err := s.clinicalRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "clinical_note",
		EntityID:   note.ID,
		Detail:     map[string]string{"visit_id": fmt.Sprint(visitID)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return note, nil
}

// AddPrescription attaches a prescription to a visit
func (s *ClinicalService) AddPrescription(ctx context.Context, visitID uint, input *AddPrescriptionInput, actorID uint, meta RequestMeta) (*models.Prescription, error) {
	if _, err := s.clinicalRepo.GetVisitByID(ctx, visitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	prescription := &models.Prescription{
		VisitID:             visitID,
		DrugID:              input.DrugID,
		Quantity:            input.Quantity,
		Frequency:           input.Frequency,
		DurationDays:        input.DurationDays,
		SpecialInstructions: input.SpecialInstructions,
		CreatedByID:         actorID,
		IsActive:            true,
	}
	if err := s.clinicalRepo.CreatePrescription(ctx, prescription); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "prescription",
		EntityID:   prescription.ID,
		Detail:     map[string]string{"visit_id": fmt.Sprint(visitID)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return prescription, nil
}

// CreateReferral opens a referral for a patient in pending status
func (s *ClinicalService) CreateReferral(ctx context.Context, input *CreateReferralInput, actorID uint, meta RequestMeta) (*models.Referral, error) {
	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = "routine"
	}

	referral := &models.Referral{
		PatientID:        input.PatientID,
		ReferralType:     input.ReferralType,
		FromStage:        input.FromStage,
		ToStage:          input.ToStage,
		ExternalProvider: input.ExternalProvider,
		Department:       input.Department,
		Reason:           input.Reason,
		Urgency:          urgency,
		AppointmentDate:  input.AppointmentDate,
		ReferralStatus:   models.ReferralPending,
		CreatedByID:      actorID,
		IsActive:         true,
	}
	if err := s.clinicalRepo.CreateReferral(ctx, referral); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "referral",
		EntityID:   referral.ID,
		Detail:     map[string]string{"patient_id": fmt.Sprint(input.PatientID)},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return referral, nil
}

// ListReferrals lists referrals with optional status filter
func (s *ClinicalService) ListReferrals(ctx context.Context, status string, offset, limit int) ([]*models.Referral, int64, error) {
	if status != "" && !validReferralStatus(status) {
		return nil, 0, ErrInvalidReferralStatus
	}
	return s.clinicalRepo.ListReferrals(ctx, status, offset, limit)
}

// UpdateReferralStatus moves a referral to a new status
func (s *ClinicalService) UpdateReferralStatus(ctx context.Context, id uint, status string, actorID uint, meta RequestMeta) error {
	if !validReferralStatus(status) {
		return ErrInvalidReferralStatus
	}

	if err := s.clinicalRepo.UpdateReferralStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferralNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "referral",
		EntityID:   id,
		Detail:     map[string]string{"status": status},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

func validReferralStatus(s string) bool {
	switch s {
	case models.ReferralPending, models.ReferralApproved, models.ReferralRejected, models.ReferralCompleted:
		return true
	}
	return false
}

