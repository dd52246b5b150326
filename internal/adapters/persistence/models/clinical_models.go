package models

import (
	"time"
)

// ============================================================
// Patient & Clinical Tables
// ============================================================

// Visit stages in workflow order
const (
	StageRegistration = "registration"
	StageAssessment   = "assessment"
	StageConsultation = "consultation"
	StageCounseling   = "counseling"
	StageClosure      = "closure"
)

// Referral statuses
const (
	ReferralPending   = "pending"
	ReferralApproved  = "approved"
	ReferralRejected  = "rejected"
	ReferralCompleted = "completed"
)

// Patient represents patients table.
// List-valued clinical fields (conditions, allergies, medications) are
// stored comma joined, matching how intake forms capture them.
type Patient struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	FirstName          string    `gorm:"size:50;not null" json:"first_name"`
	LastName           string    `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth        string    `gorm:"size:10;not null" json:"date_of_birth"`
	Gender             string    `gorm:"size:10" json:"gender"`
	PhoneNumber        string    `gorm:"size:20" json:"phone_number"`
	Email              string    `gorm:"size:100" json:"email"`
	MedicalAidNumber   string    `gorm:"uniqueIndex;size:50;not null" json:"medical_aid_number"`
	Province           string    `gorm:"size:50" json:"province"`
	PhysicalAddress    string    `gorm:"type:text" json:"physical_address"`
	IsPalmedMember     bool      `gorm:"default:false" json:"is_palmed_member"`
	ChronicConditions  string    `gorm:"type:text" json:"chronic_conditions"`
	Allergies          string    `gorm:"type:text" json:"allergies"`
	CurrentMedications string    `gorm:"type:text" json:"current_medications"`
	CreatedByID        uint      `gorm:"index" json:"created_by_id"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Visit represents patient_visits table
type Visit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PatientID      uint      `gorm:"index;not null" json:"patient_id"`
	Patient        Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	VisitDate      string    `gorm:"size:10;not null" json:"visit_date"`
	VisitTime      string    `gorm:"size:5" json:"visit_time"`
	VisitType      string    `gorm:"size:50" json:"visit_type"`
	ChiefComplaint string    `gorm:"type:text" json:"chief_complaint"`
	CurrentStage   string    `gorm:"size:20;default:'registration'" json:"current_stage"`
	RouteID        *uint     `gorm:"index" json:"route_id"`
	LocationID     *uint     `gorm:"index" json:"location_id"`
	CreatedByID    uint      `gorm:"index" json:"created_by_id"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Visit) TableName() string {
	return "patient_visits"
}

// VitalSigns represents vital_signs table
type VitalSigns struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	VisitID          uint      `gorm:"index;not null" json:"visit_id"`
	SystolicBP       *int      `json:"systolic_bp"`
	DiastolicBP      *int      `json:"diastolic_bp"`
	HeartRate        *int      `json:"heart_rate"`
	Temperature      *float64  `gorm:"type:decimal(4,1)" json:"temperature"`
	Weight           *float64  `gorm:"type:decimal(5,2)" json:"weight"`
	Height           *float64  `gorm:"type:decimal(5,2)" json:"height"`
	OxygenSaturation *int      `json:"oxygen_saturation"`
	BloodGlucose     *float64  `gorm:"type:decimal(5,2)" json:"blood_glucose"`
	NursingNotes     string    `gorm:"type:text" json:"nursing_notes"`
	RecordedByID     uint      `gorm:"index" json:"recorded_by_id"`
	RecordedAt       time.Time `gorm:"autoCreateTime" json:"recorded_at"`
}

func (VitalSigns) TableName() string {
	return "vital_signs"
}

// ClinicalNote represents clinical_notes table
type ClinicalNote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VisitID     uint      `gorm:"index;not null" json:"visit_id"`
	NoteContent string    `gorm:"type:text;not null" json:"note_content"`
	NoteType    string    `gorm:"size:30;default:'general'" json:"note_type"`
	ICD10Codes  string    `gorm:"size:255" json:"icd10_codes"`
	CreatedByID uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ClinicalNote) TableName() string {
	return "clinical_notes"
}

// Prescription represents prescriptions table
type Prescription struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	VisitID             uint      `gorm:"index;not null" json:"visit_id"`
	DrugID              uint      `gorm:"index;not null" json:"drug_id"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	Frequency           string    `gorm:"size:50" json:"frequency"`
	DurationDays        int       `json:"duration_days"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	CreatedByID         uint      `gorm:"index" json:"created_by_id"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// Referral represents referrals table
type Referral struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PatientID        uint      `gorm:"index;not null" json:"patient_id"`
	ReferralType     string    `gorm:"size:30;not null" json:"referral_type"`
	FromStage        string    `gorm:"size:20" json:"from_stage"`
	ToStage          string    `gorm:"size:20" json:"to_stage"`
	ExternalProvider string    `gorm:"size:100" json:"external_provider"`
	Department       string    `gorm:"size:100" json:"department"`
	Reason           string    `gorm:"type:text" json:"reason"`
	Urgency          string    `gorm:"size:20;default:'routine'" json:"urgency"`
	AppointmentDate  string    `gorm:"size:10" json:"appointment_date"`
	ReferralStatus   string    `gorm:"size:20;default:'pending'" json:"referral_status"`
	CreatedByID      uint      `gorm:"index" json:"created_by_id"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

// ValidStage reports whether s names a known visit stage.
func ValidStage(s string) bool {
	switch s {
	case StageRegistration, StageAssessment, StageConsultation, StageCounseling, StageClosure:
		return true
	}
	return false
}
