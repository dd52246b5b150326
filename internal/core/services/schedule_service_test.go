package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
)

type stubScheduleRepo struct {
	routes       map[uint]*models.Route
	locations    map[uint]*models.Location
	appointments map[string]*models.Appointment
	booked       map[uint]int64
	nextID       uint
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{
		routes:       make(map[uint]*models.Route),
		locations:    make(map[uint]*models.Location),
		appointments: make(map[string]*models.Appointment),
		booked:       make(map[uint]int64),
	}
}

func (r *stubScheduleRepo) CreateRoute(ctx context.Context, route *models.Route) error {
	r.nextID++
	route.ID = r.nextID
	r.routes[route.ID] = route
	return nil
}

func (r *stubScheduleRepo) GetRouteByID(ctx context.Context, id uint) (*models.Route, error) {
	if route, ok := r.routes[id]; ok {
		return route, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubScheduleRepo) UpdateRoute(ctx context.Context, route *models.Route) error {
	r.routes[route.ID] = route
	return nil
}

func (r *stubScheduleRepo) DeactivateRoute(ctx context.Context, id uint) error {
	route, ok := r.routes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	route.IsActive = false
	return nil
}

func (r *stubScheduleRepo) ListRoutes(ctx context.Context, province string, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	return routes, int64(len(routes)), nil
}

func (r *stubScheduleRepo) CreateLocation(ctx context.Context, location *models.Location) error {
	r.nextID++
	location.ID = r.nextID
	r.locations[location.ID] = location
	return nil
}

func (r *stubScheduleRepo) GetLocationByID(ctx context.Context, id uint) (*models.Location, error) {
	if location, ok := r.locations[id]; ok {
		return location, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubScheduleRepo) ListLocationsByRoute(ctx context.Context, routeID uint) ([]*models.Location, error) {
	var locations []*models.Location
	for _, location := range r.locations {
		if location.RouteID == routeID {
			locations = append(locations, location)
		}
	}
	return locations, nil
}

func (r *stubScheduleRepo) CountActiveAppointments(ctx context.Context, locationID uint) (int64, error) {
	return r.booked[locationID], nil
}

func (r *stubScheduleRepo) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	r.nextID++
	appointment.ID = r.nextID
	r.appointments[appointment.BookingReference] = appointment
	r.booked[appointment.LocationID]++
	return nil
}

func (r *stubScheduleRepo) GetAppointmentByReference(ctx context.Context, reference string) (*models.Appointment, error) {
	if appointment, ok := r.appointments[reference]; ok {
		return appointment, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubScheduleRepo) UpdateAppointmentStatus(ctx context.Context, id uint, status string) error {
	for _, appointment := range r.appointments {
		if appointment.ID == id {
			appointment.AppointmentStatus = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubScheduleRepo) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error) {
	var appointments []*models.Appointment
	for _, appointment := range r.appointments {
		appointments = append(appointments, appointment)
	}
	return appointments, int64(len(appointments)), nil
}

func (r *stubScheduleRepo) CountAppointmentsByStatus(ctx context.Context, date string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, appointment := range r.appointments {
		if appointment.AppointmentDate == date {
			counts[appointment.AppointmentStatus]++
		}
	}
	return counts, nil
}

func seedLocation(repo *stubScheduleRepo, maxAppointments int) *models.Location {
	location := &models.Location{
		RouteID:         1,
		LocationName:    "Soweto Community Hall",
		VisitDate:       "2026-09-15",
		MaxAppointments: maxAppointments,
		IsActive:        true,
	}
	_ = repo.CreateLocation(context.Background(), location)
	return location
}

var bookingReferencePattern = regexp.MustCompile(`^APT-\d{14}-[0-9A-F]{6}$`)

func TestBookAppointment(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := NewScheduleService(repo, NewAuditService(&stubAuditRepo{}))
	location := seedLocation(repo, 2)

	resp, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		LocationID:  location.ID,
		FirstName:   "Sipho",
		LastName:    "Dlamini",
		PhoneNumber: "0821234567",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if !bookingReferencePattern.MatchString(resp.BookingReference) {
		t.Fatalf("unexpected reference format: %q", resp.BookingReference)
	}
	if resp.AppointmentDate != "2026-09-15" {
		t.Fatalf("expected booking on the visit date, got %q", resp.AppointmentDate)
	}

	booked, err := svc.GetAppointment(context.Background(), resp.BookingReference)
	if err != nil {
		t.Fatalf("lookup by reference: %v", err)
	}
	if booked.AppointmentStatus != models.AppointmentConfirmed {
		t.Fatalf("expected confirmed booking, got %q", booked.AppointmentStatus)
	}
}

func TestBookAppointmentFullLocation(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := NewScheduleService(repo, NewAuditService(&stubAuditRepo{}))
	location := seedLocation(repo, 1)

	input := &BookAppointmentInput{
		LocationID:  location.ID,
		FirstName:   "Sipho",
		LastName:    "Dlamini",
		PhoneNumber: "0821234567",
	}

	if _, err := svc.BookAppointment(context.Background(), input); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.BookAppointment(context.Background(), input); !errors.Is(err, ErrNoAvailableSlots) {
		t.Fatalf("expected ErrNoAvailableSlots, got %v", err)
	}
}

func TestCancelAppointment(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := NewScheduleService(repo, NewAuditService(&stubAuditRepo{}))
	location := seedLocation(repo, 5)

	resp, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		LocationID:  location.ID,
		FirstName:   "Sipho",
		LastName:    "Dlamini",
		PhoneNumber: "0821234567",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := svc.CancelAppointment(context.Background(), resp.BookingReference); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancelling twice is rejected
	if err := svc.CancelAppointment(context.Background(), resp.BookingReference); !errors.Is(err, ErrAppointmentNotActive) {
		t.Fatalf("expected ErrAppointmentNotActive, got %v", err)
	}
}

func TestUpdateAppointmentStatusValidation(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := NewScheduleService(repo, NewAuditService(&stubAuditRepo{}))

	err := svc.UpdateAppointmentStatus(context.Background(), "APT-X", "archived", 1, RequestMeta{})
	if !errors.Is(err, ErrInvalidBookingStatus) {
		t.Fatalf("expected ErrInvalidBookingStatus, got %v", err)
	}
}

func TestGetLocationAvailabilityFloor(t *testing.T) {
	repo := newStubScheduleRepo()
	svc := NewScheduleService(repo, NewAuditService(&stubAuditRepo{}))
	location := seedLocation(repo, 1)
	repo.booked[location.ID] = 3

	availability, err := svc.GetLocationAvailability(context.Background(), location.ID)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if availability.AvailableSlots != 0 {
		t.Fatalf("expected overbooked location to report 0 slots, got %d", availability.AvailableSlots)
	}
}
