package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// scheduleRepository implements ScheduleRepository interface
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new route and appointment repository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// CreateRoute creates a new route
func (r *scheduleRepository) CreateRoute(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

// GetRouteByID gets an active route by ID
func (r *scheduleRepository) GetRouteByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// UpdateRoute updates a route
func (r *scheduleRepository) UpdateRoute(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

// DeactivateRoute marks a route inactive
func (r *scheduleRepository) DeactivateRoute(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Route{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRoutes lists active routes with optional province filter
func (r *scheduleRepository) ListRoutes(ctx context.Context, province string, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Route{}).Where("is_active = ?", true)
	if province != "" {
		query = query.Where("province = ?", province)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("start_date DESC").Offset(offset).Limit(limit).Find(&routes).Error; err != nil {
		return nil, 0, err
	}

	return routes, total, nil
}

// CreateLocation adds a scheduled stop to a route
func (r *scheduleRepository) CreateLocation(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GetLocationByID gets an active location by ID
func (r *scheduleRepository) GetLocationByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// ListLocationsByRoute lists stops of a route in visit order
func (r *scheduleRepository) ListLocationsByRoute(ctx context.Context, routeID uint) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND is_active = ?", routeID, true).
		Order("visit_date, visit_sequence").Find(&locations).Error
	return locations, err
}

// CountActiveAppointments counts bookings at a location that still hold a slot
func (r *scheduleRepository) CountActiveAppointments(ctx context.Context, locationID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("location_id = ? AND appointment_status IN ?", locationID,
			[]string{models.AppointmentConfirmed, models.AppointmentPending}).
		Count(&count).Error
	return count, err
}

// CreateAppointment creates a booking
func (r *scheduleRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// GetAppointmentByReference gets a booking by its reference with location preloaded
func (r *scheduleRepository) GetAppointmentByReference(ctx context.Context, reference string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Preload("Location").
		Where("booking_reference = ?", reference).First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointmentStatus updates a booking's status
func (r *scheduleRepository) UpdateAppointmentStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"appointment_status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAppointments lists bookings, newest first
func (r *scheduleRepository) ListAppointments(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error) {
	var appointments []*models.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.LocationID > 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.Status != "" {
		query = query.Where("appointment_status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("appointment_date = ?", filter.Date)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Location").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// CountAppointmentsByStatus counts a day's bookings grouped by status
func (r *scheduleRepository) CountAppointmentsByStatus(ctx context.Context, date string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("appointment_status AS status, COUNT(*) AS count").
		Where("appointment_date = ?", date).
		Group("appointment_status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
