package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
)

type stubPatientRepo struct {
	patients map[uint]*models.Patient
	byAid    map[string]*models.Patient
	nextID   uint
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{
		patients: make(map[uint]*models.Patient),
		byAid:    make(map[string]*models.Patient),
	}
}

func (r *stubPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	r.nextID++
	patient.ID = r.nextID
	r.patients[patient.ID] = patient
	r.byAid[patient.MedicalAidNumber] = patient
	return nil
}

func (r *stubPatientRepo) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	if patient, ok := r.patients[id]; ok && patient.IsActive {
		return patient, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPatientRepo) GetByMedicalAidNumber(ctx context.Context, number string) (*models.Patient, error) {
	if patient, ok := r.byAid[number]; ok {
		return patient, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPatientRepo) ExistsByMedicalAidNumber(ctx context.Context, number string) (bool, error) {
	_, ok := r.byAid[number]
	return ok, nil
}

func (r *stubPatientRepo) Update(ctx context.Context, patient *models.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *stubPatientRepo) Deactivate(ctx context.Context, id uint) error {
	patient, ok := r.patients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	patient.IsActive = false
	return nil
}

func (r *stubPatientRepo) List(ctx context.Context, filter repositories.PatientFilter, offset, limit int) ([]*models.Patient, int64, error) {
	var patients []*models.Patient
	for _, patient := range r.patients {
		patients = append(patients, patient)
	}
	return patients, int64(len(patients)), nil
}

type stubClinicalRepo struct {
	visits    map[uint]*models.Visit
	vitals    []*models.VitalSigns
	notes     []*models.ClinicalNote
	scripts   []*models.Prescription
	referrals map[uint]*models.Referral
	nextID    uint
}

func newStubClinicalRepo() *stubClinicalRepo {
	return &stubClinicalRepo{
		visits:    make(map[uint]*models.Visit),
		referrals: make(map[uint]*models.Referral),
	}
}

func (r *stubClinicalRepo) CreateVisit(ctx context.Context, visit *models.Visit) error {
	r.nextID++
	visit.ID = r.nextID
	r.visits[visit.ID] = visit
	return nil
}

func (r *stubClinicalRepo) GetVisitByID(ctx context.Context, id uint) (*models.Visit, error) {
	if visit, ok := r.visits[id]; ok {
		return visit, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClinicalRepo) ListVisits(ctx context.Context, filter repositories.VisitFilter, offset, limit int) ([]*models.Visit, int64, error) {
	var visits []*models.Visit
	for _, visit := range r.visits {
		visits = append(visits, visit)
	}
	return visits, int64(len(visits)), nil
}

func (r *stubClinicalRepo) UpdateVisitStage(ctx context.Context, id uint, stage string) error {
	visit, ok := r.visits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	visit.CurrentStage = stage
	return nil
}

func (r *stubClinicalRepo) CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error {
	r.vitals = append(r.vitals, vitals)
	return nil
}

func (r *stubClinicalRepo) ListVitalSignsByVisit(ctx context.Context, visitID uint) ([]*models.VitalSigns, error) {
	return r.vitals, nil
}

func (r *stubClinicalRepo) CreateNote(ctx context.Context, note *models.ClinicalNote) error {
	r.notes = append(r.notes, note)
	return nil
}

func (r *stubClinicalRepo) ListNotesByVisit(ctx context.Context, visitID uint) ([]*models.ClinicalNote, error) {
	return r.notes, nil
}

func (r *stubClinicalRepo) CreatePrescription(ctx context.Context, prescription *models.Prescription) error {
	r.scripts = append(r.scripts, prescription)
	return nil
}

func (r *stubClinicalRepo) ListPrescriptionsByVisit(ctx context.Context, visitID uint) ([]*models.Prescription, error) {
	return r.scripts, nil
}

func (r *stubClinicalRepo) CreateReferral(ctx context.Context, referral *models.Referral) error {
	r.nextID++
	referral.ID = r.nextID
	r.referrals[referral.ID] = referral
	return nil
}

func (r *stubClinicalRepo) GetReferralByID(ctx context.Context, id uint) (*models.Referral, error) {
	if referral, ok := r.referrals[id]; ok {
		return referral, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClinicalRepo) ListReferrals(ctx context.Context, status string, offset, limit int) ([]*models.Referral, int64, error) {
	var referrals []*models.Referral
	for _, referral := range r.referrals {
		referrals = append(referrals, referral)
	}
	return referrals, int64(len(referrals)), nil
}

func (r *stubClinicalRepo) UpdateReferralStatus(ctx context.Context, id uint, status string) error {
	referral, ok := r.referrals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	referral.ReferralStatus = status
	return nil
}

func newClinicalTestService() (*ClinicalService, *stubClinicalRepo, *stubPatientRepo) {
	clinicalRepo := newStubClinicalRepo()
	patientRepo := newStubPatientRepo()
	svc := NewClinicalService(clinicalRepo, patientRepo, NewAuditService(&stubAuditRepo{}))
	return svc, clinicalRepo, patientRepo
}

func seedPatient(repo *stubPatientRepo) *models.Patient {
	patient := &models.Patient{
		FirstName:        "Nomsa",
		LastName:         "Khumalo",
		MedicalAidNumber: "PM-1001",
		IsActive:         true,
	}
	_ = repo.Create(context.Background(), patient)
	return patient
}

func TestCreateVisitOpensAtRegistration(t *testing.T) {
	svc, _, patientRepo := newClinicalTestService()
	patient := seedPatient(patientRepo)

	visit, err := svc.CreateVisit(context.Background(), &CreateVisitInput{
		PatientID: patient.ID,
		VisitDate: "2026-09-01",
		VisitType: "walk_in",
	}, 2, RequestMeta{})
	if err != nil {
		t.Fatalf("create visit: %v", err)
	}

	if visit.CurrentStage != models.StageRegistration {
		t.Fatalf("expected new visit at registration, got %q", visit.CurrentStage)
	}
	if visit.VisitTime != "09:00" {
		t.Fatalf("expected default visit time, got %q", visit.VisitTime)
	}
}

func TestCreateVisitUnknownPatient(t *testing.T) {
	svc, _, _ := newClinicalTestService()

	_, err := svc.CreateVisit(context.Background(), &CreateVisitInput{
		PatientID: 999,
		VisitDate: "2026-09-01",
		VisitType: "walk_in",
	}, 2, RequestMeta{})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

// Stage changes accept any known stage; there is no enforced ordering.
func TestUpdateVisitStage(t *testing.T) {
	svc, clinicalRepo, patientRepo := newClinicalTestService()
	patient := seedPatient(patientRepo)

	visit, err := svc.CreateVisit(context.Background(), &CreateVisitInput{
		PatientID: patient.ID,
		VisitDate: "2026-09-01",
		VisitType: "walk_in",
	}, 2, RequestMeta{})
	if err != nil {
		t.Fatalf("create visit: %v", err)
	}

	// Jumping straight to closure is allowed
	if err := svc.UpdateVisitStage(context.Background(), visit.ID, models.StageClosure, 2, RequestMeta{}); err != nil {
		t.Fatalf("update stage: %v", err)
	}
	if clinicalRepo.visits[visit.ID].CurrentStage != models.StageClosure {
		t.Fatalf("stage not updated: %q", clinicalRepo.visits[visit.ID].CurrentStage)
	}

	// Moving back is allowed too
	if err := svc.UpdateVisitStage(context.Background(), visit.ID, models.StageAssessment, 2, RequestMeta{}); err != nil {
		t.Fatalf("update stage backwards: %v", err)
	}

	// Unknown stages are rejected
	err = svc.UpdateVisitStage(context.Background(), visit.ID, "discharged", 2, RequestMeta{})
	if !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
}

func TestUpdateReferralStatusValidation(t *testing.T) {
	svc, _, patientRepo := newClinicalTestService()
	patient := seedPatient(patientRepo)

	referral, err := svc.CreateReferral(context.Background(), &CreateReferralInput{
		PatientID:    patient.ID,
		ReferralType: "external",
		Reason:       "cardiology follow up",
	}, 2, RequestMeta{})
	if err != nil {
		t.Fatalf("create referral: %v", err)
	}
	if referral.ReferralStatus != models.ReferralPending {
		t.Fatalf("expected new referral pending, got %q", referral.ReferralStatus)
	}

	if err := svc.UpdateReferralStatus(context.Background(), referral.ID, models.ReferralApproved, 2, RequestMeta{}); err != nil {
		t.Fatalf("approve referral: %v", err)
	}

	err = svc.UpdateReferralStatus(context.Background(), referral.ID, "escalated", 2, RequestMeta{})
	if !errors.Is(err, ErrInvalidReferralStatus) {
		t.Fatalf("expected ErrInvalidReferralStatus, got %v", err)
	}
}
