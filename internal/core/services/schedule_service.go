package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Schedule errors
var (
	ErrRouteNotFound        = errors.New("route not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNoAvailableSlots     = errors.New("no available slots at this location")
	ErrInvalidBookingStatus = errors.New("invalid appointment status")
	ErrAppointmentNotActive = errors.New("appointment is not active")
)

// ScheduleService handles routes, locations and public appointment booking
type ScheduleService struct {
	scheduleRepo repositories.ScheduleRepository
	audit        *AuditService
	log          zerolog.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo repositories.ScheduleRepository, audit *AuditService) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		audit:        audit,
		log:          logger.Get(),
	}
}

// CreateRouteInput represents route planning input
type CreateRouteInput struct {
	RouteName             string `json:"route_name" validate:"required"`
	Description           string `json:"description"`
	Province              string `json:"province" validate:"required"`
	RouteType             string `json:"route_type"`
	StartDate             string `json:"start_date" validate:"required"`
	EndDate               string `json:"end_date" validate:"required"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	MaxAppointmentsPerDay int    `json:"max_appointments_per_day"`
}

// AddLocationInput represents a scheduled stop on a route
type AddLocationInput struct {
	LocationName    string `json:"location_name" validate:"required"`
	LocationType    string `json:"location_type"`
	Address         string `json:"address"`
	Province        string `json:"province"`
	VisitDate       string `json:"visit_date" validate:"required"`
	VisitSequence   int    `json:"visit_sequence"`
	MaxAppointments int    `json:"max_appointments"`
}

// BookAppointmentInput represents a public booking request
type BookAppointmentInput struct {
	LocationID       uint   `json:"location_id" validate:"required"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	PhoneNumber      string `json:"phone_number" validate:"required"`
	MedicalAidNumber string `json:"medical_aid_number"`
}

// BookingResponse represents a confirmed booking
type BookingResponse struct {
	AppointmentID    uint   `json:"appointment_id"`
	BookingReference string `json:"booking_reference"`
	AppointmentDate  string `json:"appointment_date"`
	Location         string `json:"location"`
}

// LocationAvailability pairs a location with its open slot count
type LocationAvailability struct {
	Location       *models.Location `json:"location"`
	AvailableSlots int64            `json:"available_slots"`
}

// CreateRoute plans a new route
func (s *ScheduleService) CreateRoute(ctx context.Context, input *CreateRouteInput, actorID uint, meta RequestMeta) (*models.Route, error) {
	routeType := input.RouteType
	if routeType == "" {
		routeType = "mobile_clinic"
	}
	startTime := input.StartTime
	if startTime == "" {
		startTime = "08:00"
	}
	endTime := input.EndTime
	if endTime == "" {
		endTime = "17:00"
	}
	maxPerDay := input.MaxAppointmentsPerDay
	if maxPerDay <= 0 {
		maxPerDay = 50
	}

	route := &models.Route{
		RouteName:             input.RouteName,
		Description:           input.Description,
		Province:              input.Province,
		RouteType:             routeType,
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		StartTime:             startTime,
		EndTime:               endTime,
		MaxAppointmentsPerDay: maxPerDay,
		IsActive:              true,
		CreatedByID:           actorID,
	}
	if err := s.scheduleRepo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "route",
		EntityID:   route.ID,
		Detail:     map[string]string{"route_name": route.RouteName, "province": route.Province},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("route_id", route.ID).Str("province", route.Province).Msg("route planned")

	return route, nil
}

// GetRoute returns a route with its scheduled stops
func (s *ScheduleService) GetRoute(ctx context.Context, id uint) (*models.Route, []*models.Location, error) {
	route, err := s.scheduleRepo.GetRouteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRouteNotFound
		}
		return nil, nil, err
	}

	locations, err := s.scheduleRepo.ListLocationsByRoute(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return route, locations, nil
}

// ListRoutes lists active routes
func (s *ScheduleService) ListRoutes(ctx context.Context, province string, offset, limit int) ([]*models.Route, int64, error) {
	return s.scheduleRepo.ListRoutes(ctx, province, offset, limit)
}

// DeactivateRoute cancels a planned route
func (s *ScheduleService) DeactivateRoute(ctx context.Context, id, actorID uint, meta RequestMeta) error {
	if err := s.scheduleRepo.DeactivateRoute(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionDeactivate,
		EntityType: "route",
		EntityID:   id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// AddLocation adds a scheduled stop to a route
func (s *ScheduleService) AddLocation(ctx context.Context, routeID uint, input *AddLocationInput, actorID uint, meta RequestMeta) (*models.Location, error) {
	if _, err := s.scheduleRepo.GetRouteByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	sequence := input.VisitSequence
	if sequence <= 0 {
		sequence = 1
	}
	maxAppointments := input.MaxAppointments
	if maxAppointments <= 0 {
		maxAppointments = 50
	}

	location := &models.Location{
		RouteID:         routeID,
		LocationName:    input.LocationName,
		LocationType:    input.LocationType,
		Address:         input.Address,
		Province:        input.Province,
		VisitDate:       input.VisitDate,
		VisitSequence:   sequence,
		MaxAppointments: maxAppointments,
		IsActive:        true,
	}
	if err := s.scheduleRepo.CreateLocation(ctx, location); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "location",
		EntityID:   location.ID,
		Detail:     map[string]string{"route_id": fmt.Sprint(routeID), "name": location.LocationName},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return location, nil
}

// GetLocationAvailability returns a stop with its remaining slots
func (s *ScheduleService) GetLocationAvailability(ctx context.Context, locationID uint) (*LocationAvailability, error) {
	location, err := s.scheduleRepo.GetLocationByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	booked, err := s.scheduleRepo.CountActiveAppointments(ctx, locationID)
	if err != nil {
		return nil, err
	}

	available := int64(location.MaxAppointments) - booked
	if available < 0 {
		available = 0
	}

	return &LocationAvailability{
		Location:       location,
		AvailableSlots: available,
	}, nil
}

// BookAppointment books a public appointment at a location. No account
// is needed; the booking is identified by its reference.
func (s *ScheduleService) BookAppointment(ctx context.Context, input *BookAppointmentInput) (*BookingResponse, error) {
	// 1. Check capacity
	availability, err := s.GetLocationAvailability(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}
	if availability.AvailableSlots <= 0 {
		return nil, ErrNoAvailableSlots
	}

	// 2. Generate a reference the caller can quote later
	reference := fmt.Sprintf("APT-%s-%s",
		time.Now().UTC().Format("20060102150405"),
		strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6]))

	// 3. Book against the location's visit date
	appointment := &models.Appointment{
		LocationID:        input.LocationID,
		BookingReference:  reference,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		PhoneNumber:       input.PhoneNumber,
		MedicalAidNumber:  input.MedicalAidNumber,
		AppointmentStatus: models.AppointmentConfirmed,
		AppointmentDate:   availability.Location.VisitDate,
	}
	if err := s.scheduleRepo.CreateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("appointment_id", appointment.ID).
		Str("reference", reference).
		Uint("location_id", input.LocationID).
		Msg("appointment booked")

	return &BookingResponse{
		AppointmentID:    appointment.ID,
		BookingReference: reference,
		AppointmentDate:  appointment.AppointmentDate,
		Location:         availability.Location.LocationName,
	}, nil
}

// GetAppointment looks up a booking by reference
func (s *ScheduleService) GetAppointment(ctx context.Context, reference string) (*models.Appointment, error) {
	appointment, err := s.scheduleRepo.GetAppointmentByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// CancelAppointment cancels a booking by reference, freeing its slot
func (s *ScheduleService) CancelAppointment(ctx context.Context, reference string) error {
	appointment, err := s.GetAppointment(ctx, reference)
	if err != nil {
		return err
	}
	if appointment.AppointmentStatus == models.AppointmentCancelled ||
		appointment.AppointmentStatus == models.AppointmentCompleted {
		return ErrAppointmentNotActive
	}

	if err := s.scheduleRepo.UpdateAppointmentStatus(ctx, appointment.ID, models.AppointmentCancelled); err != nil {
		return err
	}

	s.log.Info().Str("reference", reference).Msg("appointment cancelled")
	return nil
}

// UpdateAppointmentStatus lets staff move a booking through its lifecycle
func (s *ScheduleService) UpdateAppointmentStatus(ctx context.Context, reference, status string, actorID uint, meta RequestMeta) error {
	if !validAppointmentStatus(status) {
		return ErrInvalidBookingStatus
	}

	appointment, err := s.GetAppointment(ctx, reference)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.UpdateAppointmentStatus(ctx, appointment.ID, status); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "appointment",
		EntityID:   appointment.ID,
		Detail:     map[string]string{"status": status, "reference": reference},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// ListAppointments lists bookings for staff
func (s *ScheduleService) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error) {
	if filter.Status != "" && !validAppointmentStatus(filter.Status) {
		return nil, 0, ErrInvalidBookingStatus
	}
	return s.scheduleRepo.ListAppointments(ctx, filter, offset, limit)
}

// TodayStats summarizes today's bookings by status
type TodayStats struct {
	Date     string           `json:"date"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// GetTodayStats counts today's bookings grouped by status
func (s *ScheduleService) GetTodayStats(ctx context.Context) (*TodayStats, error) {
	date := time.Now().UTC().Format("2006-01-02")

	counts, err := s.scheduleRepo.CountAppointmentsByStatus(ctx, date)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	return &TodayStats{Date: date, Total: total, ByStatus: counts}, nil
}

func validAppointmentStatus(s string) bool {
	switch s {
	case models.AppointmentConfirmed, models.AppointmentPending,
		models.AppointmentCompleted, models.AppointmentCancelled:
		return true
	}
	return false
}
