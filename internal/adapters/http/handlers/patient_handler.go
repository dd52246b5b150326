package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/pagination"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/response"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/validation"
)

// PatientHandler handles patient administration endpoints
type PatientHandler struct {
	patientService *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create handles patient registration
// @Summary Register patient
// @Description Register a new patient
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePatientInput true "Patient data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePatientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	patient, err := h.patientService.CreatePatient(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrMedicalAidInUse) {
			return response.Conflict(c, "Patient with this medical aid number already exists")
		}
		return response.InternalServerError(c, "Failed to register patient")
	}

	return response.Created(c, "Patient registered successfully", patient)
}

// List handles patient listing with search
// @Summary List patients
// @Description List active patients with search and pagination
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or medical aid number"
// @Param province query string false "Province filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.PatientFilter{
		Search:   c.Query("search"),
		Province: c.Query("province"),
	}

	patients, total, err := h.patientService.ListPatients(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list patients")
	}

	return response.Success(c, "", pagination.NewResponse(patients, params, total))
}

// Get handles patient detail
// @Summary Get patient
// @Description Get one patient by ID
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid patient ID")
	}

	patient, err := h.patientService.GetPatient(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to load patient")
	}

	return response.Success(c, "", patient)
}

// Update handles partial patient updates
// @Summary Update patient
// @Description Update a patient record
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body services.UpdatePatientInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var input services.UpdatePatientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	patient, err := h.patientService.UpdatePatient(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to update patient")
	}

	return response.Success(c, "Patient updated successfully", patient)
}

// Deactivate handles patient record deactivation
// @Summary Deactivate patient
// @Description Mark a patient record inactive
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid patient ID")
	}

	err = h.patientService.DeactivatePatient(c.Context(), uint(id), middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to deactivate patient")
	}

	return response.Success(c, "Patient deactivated successfully", nil)
}
