package services

import (
	"context"
	"errors"
	"testing"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

func TestCreatePatientJoinsListFields(t *testing.T) {
	repo := newStubPatientRepo()
	svc := NewPatientService(repo, NewAuditService(&stubAuditRepo{}))

	patient, err := svc.CreatePatient(context.Background(), &CreatePatientInput{
		FirstName:         "Nomsa",
		LastName:          "Khumalo",
		DateOfBirth:       "1975-04-12",
		MedicalAidNumber:  "PM-2001",
		ChronicConditions: []string{"hypertension", "diabetes"},
		Allergies:         []string{"penicillin"},
	}, 1, RequestMeta{})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	if patient.ChronicConditions != "hypertension,diabetes" {
		t.Fatalf("unexpected chronic conditions: %q", patient.ChronicConditions)
	}
	if patient.Allergies != "penicillin" {
		t.Fatalf("unexpected allergies: %q", patient.Allergies)
	}
	if !patient.IsActive {
		t.Fatal("expected new patient to be active")
	}
}

// The medical aid number stays reserved even after deactivation.
func TestCreatePatientDuplicateMedicalAid(t *testing.T) {
	repo := newStubPatientRepo()
	svc := NewPatientService(repo, NewAuditService(&stubAuditRepo{}))

	input := &CreatePatientInput{
		FirstName:        "Nomsa",
		LastName:         "Khumalo",
		DateOfBirth:      "1975-04-12",
		MedicalAidNumber: "PM-2001",
	}
	first, err := svc.CreatePatient(context.Background(), input, 1, RequestMeta{})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	if _, err := svc.CreatePatient(context.Background(), input, 1, RequestMeta{}); !errors.Is(err, ErrMedicalAidInUse) {
		t.Fatalf("expected ErrMedicalAidInUse, got %v", err)
	}

	if err := svc.DeactivatePatient(context.Background(), first.ID, 1, RequestMeta{}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.CreatePatient(context.Background(), input, 1, RequestMeta{}); !errors.Is(err, ErrMedicalAidInUse) {
		t.Fatalf("expected number to stay reserved after deactivation, got %v", err)
	}
}

func TestDeactivatePatientAudits(t *testing.T) {
	repo := newStubPatientRepo()
	auditRepo := &stubAuditRepo{}
	svc := NewPatientService(repo, NewAuditService(auditRepo))

	patient, err := svc.CreatePatient(context.Background(), &CreatePatientInput{
		FirstName:        "Nomsa",
		LastName:         "Khumalo",
		DateOfBirth:      "1975-04-12",
		MedicalAidNumber: "PM-2001",
	}, 1, RequestMeta{})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	if err := svc.DeactivatePatient(context.Background(), patient.ID, 4, RequestMeta{}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	var found bool
	for _, entry := range auditRepo.entries {
		if entry.Action == models.ActionDeactivate && entry.EntityType == "patient" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DEACTIVATE audit entry, got %+v", auditRepo.entries)
	}
}

func TestGetPatientNotFound(t *testing.T) {
	svc := NewPatientService(newStubPatientRepo(), NewAuditService(&stubAuditRepo{}))

	if _, err := svc.GetPatient(context.Background(), 42); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
