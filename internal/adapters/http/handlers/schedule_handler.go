package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/pagination"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/response"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/validation"
)

// ScheduleHandler handles route planning and appointment endpoints
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// UpdateAppointmentStatusRequest represents a booking status change body
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateRoute plans a route
// @Summary Create route
// @Description Plan a new mobile clinic route
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRouteInput true "Route data"
// @Success 201 {object} response.Response
// @Router /routes [post]
func (h *ScheduleHandler) CreateRoute(c *fiber.Ctx) error {
	var input services.CreateRouteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	route, err := h.scheduleService.CreateRoute(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to create route")
	}

	return response.Created(c, "Route created successfully", route)
}

// ListRoutes lists routes
// @Summary List routes
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param province query string false "Province filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /routes [get]
func (h *ScheduleHandler) ListRoutes(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	routes, total, err := h.scheduleService.ListRoutes(c.Context(), c.Query("province"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list routes")
	}

	return response.Success(c, "", pagination.NewResponse(routes, params, total))
}

// GetRoute returns a route with its stops
// @Summary Get route
// @Description Get one route with its scheduled stops
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id} [get]
func (h *ScheduleHandler) GetRoute(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	route, locations, err := h.scheduleService.GetRoute(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to load route")
	}

	return response.Success(c, "", fiber.Map{
		"route":     route,
		"locations": locations,
	})
}

// DeactivateRoute cancels a route
// @Summary Deactivate route
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id} [delete]
func (h *ScheduleHandler) DeactivateRoute(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	err = h.scheduleService.DeactivateRoute(c.Context(), uint(id), middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to deactivate route")
	}

	return response.Success(c, "Route deactivated successfully", nil)
}

// AddLocation adds a stop to a route
// @Summary Add location
// @Description Add a scheduled stop to a route
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Param body body services.AddLocationInput true "Location data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id}/locations [post]
func (h *ScheduleHandler) AddLocation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	var input services.AddLocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	location, err := h.scheduleService.AddLocation(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to add location")
	}

	return response.Created(c, "Location added successfully", location)
}

// GetLocationAvailability returns open slot count for a stop. Public,
// prospective patients check availability before booking.
// @Summary Location availability
// @Description Get a location with its open appointment slots
// @Tags Appointments
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/locations/{id}/availability [get]
func (h *ScheduleHandler) GetLocationAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid location ID")
	}

	availability, err := h.scheduleService.GetLocationAvailability(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to load availability")
	}

	return response.Success(c, "", availability)
}

// BookAppointment books a public appointment
// @Summary Book appointment
// @Description Book an appointment at a location, no account needed
// @Tags Appointments
// @Accept json
// @Produce json
// @Param body body services.BookAppointmentInput true "Booking data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *ScheduleHandler) BookAppointment(c *fiber.Ctx) error {
	var input services.BookAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	booking, err := h.scheduleService.BookAppointment(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		case errors.Is(err, services.ErrNoAvailableSlots):
			return response.Conflict(c, "No available slots at this location")
		default:
			return response.InternalServerError(c, "Failed to book appointment")
		}
	}

	return response.Created(c, "Appointment booked successfully", booking)
}

// GetAppointment looks up a booking by reference. Public.
// @Summary Get appointment
// @Description Look up a booking by its reference
// @Tags Appointments
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{reference} [get]
func (h *ScheduleHandler) GetAppointment(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "Booking reference is required")
	}

	appointment, err := h.scheduleService.GetAppointment(c.Context(), reference)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to load appointment")
	}

	return response.Success(c, "", appointment)
}

// CancelAppointment cancels a booking by reference. Public.
// @Summary Cancel appointment
// @Description Cancel a booking, freeing its slot
// @Tags Appointments
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{reference} [delete]
func (h *ScheduleHandler) CancelAppointment(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "Booking reference is required")
	}

	err := h.scheduleService.CancelAppointment(c.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrAppointmentNotActive):
			return response.BadRequest(c, "Appointment is already cancelled or completed")
		default:
			return response.InternalServerError(c, "Failed to cancel appointment")
		}
	}

	return response.Success(c, "Appointment cancelled successfully", nil)
}

// UpdateAppointmentStatus moves a booking through its lifecycle. Staff only.
// @Summary Update appointment status
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Booking reference"
// @Param body body UpdateAppointmentStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{reference}/status [put]
func (h *ScheduleHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "Booking reference is required")
	}

	var req UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err := h.scheduleService.UpdateAppointmentStatus(c.Context(), reference, req.Status, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingStatus):
			return response.BadRequest(c, "Invalid appointment status")
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		default:
			return response.InternalServerError(c, "Failed to update appointment")
		}
	}

	return response.Success(c, "Appointment status updated successfully", nil)
}

// ListAppointments lists bookings for staff
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param location_id query int false "Location filter"
// @Param status query string false "Status filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /appointments/admin [get]
func (h *ScheduleHandler) ListAppointments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	locationID, _ := strconv.Atoi(c.Query("location_id", "0"))
	filter := repositories.AppointmentFilter{
		LocationID: uint(locationID),
		Status:     c.Query("status"),
		Date:       c.Query("date"),
	}

	appointments, total, err := h.scheduleService.ListAppointments(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBookingStatus) {
			return response.BadRequest(c, "Invalid appointment status")
		}
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "", pagination.NewResponse(appointments, params, total))
}

// TodayStats summarizes today's bookings
// @Summary Today's appointment stats
// @Description Count today's bookings grouped by status
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /appointments/stats/today [get]
func (h *ScheduleHandler) TodayStats(c *fiber.Ctx) error {
	stats, err := h.scheduleService.GetTodayStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load appointment stats")
	}
	return response.Success(c, "", stats)
}
