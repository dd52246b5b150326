package models

import (
	"time"
)

// ============================================================
// Route & Appointment Tables
// ============================================================

// Appointment statuses
const (
	AppointmentConfirmed = "confirmed"
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Route represents routes table. A route is a planned mobile clinic
// trip through one or more locations.
type Route struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	RouteName             string    `gorm:"size:100;not null" json:"route_name"`
	Description           string    `gorm:"type:text" json:"description"`
	Province              string    `gorm:"size:50;not null" json:"province"`
	RouteType             string    `gorm:"size:30;default:'mobile_clinic'" json:"route_type"`
	StartDate             string    `gorm:"size:10;not null" json:"start_date"`
	EndDate               string    `gorm:"size:10;not null" json:"end_date"`
	StartTime             string    `gorm:"size:5;default:'08:00'" json:"start_time"`
	EndTime               string    `gorm:"size:5;default:'17:00'" json:"end_time"`
	MaxAppointmentsPerDay int       `gorm:"default:50" json:"max_appointments_per_day"`
	IsActive              bool      `gorm:"default:true" json:"is_active"`
	CreatedByID           uint      `gorm:"index" json:"created_by_id"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Route) TableName() string {
	return "routes"
}

// Location represents locations table. Each location is one scheduled
// stop on a route, visited on a specific date.
type Location struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RouteID         uint      `gorm:"index;not null" json:"route_id"`
	LocationName    string    `gorm:"size:100;not null" json:"location_name"`
	LocationType    string    `gorm:"size:30" json:"location_type"`
	Address         string    `gorm:"type:text" json:"address"`
	Province        string    `gorm:"size:50" json:"province"`
	VisitDate       string    `gorm:"size:10;not null;index" json:"visit_date"`
	VisitSequence   int       `gorm:"default:1" json:"visit_sequence"`
	MaxAppointments int       `gorm:"default:50" json:"max_appointments"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Location) TableName() string {
	return "locations"
}

// Appointment represents appointments table. Bookings are made by the
// public against a location, identified by booking reference.
type Appointment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	LocationID        uint      `gorm:"index;not null" json:"location_id"`
	Location          Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	BookingReference  string    `gorm:"uniqueIndex;size:40;not null" json:"booking_reference"`
	FirstName         string    `gorm:"size:50;not null" json:"first_name"`
	LastName          string    `gorm:"size:50;not null" json:"last_name"`
	PhoneNumber       string    `gorm:"size:20;not null" json:"phone_number"`
	MedicalAidNumber  string    `gorm:"size:50" json:"medical_aid_number"`
	AppointmentStatus string    `gorm:"size:20;default:'confirmed';index" json:"appointment_status"`
	AppointmentDate   string    `gorm:"size:10;index" json:"appointment_date"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
