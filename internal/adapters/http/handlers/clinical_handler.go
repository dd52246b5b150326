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

// ClinicalHandler handles visit workflow endpoints
type ClinicalHandler struct {
	clinicalService *services.ClinicalService
}

// NewClinicalHandler creates a new clinical handler
func NewClinicalHandler(clinicalService *services.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{clinicalService: clinicalService}
}

// UpdateStageRequest represents a stage change request body
type UpdateStageRequest struct {
	NewStage string `json:"new_stage" validate:"required"`
}

// UpdateReferralStatusRequest represents a referral status change body
type UpdateReferralStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateVisit opens a visit
// @Summary Create visit
// @Description Open a visit for a patient at the registration stage
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateVisitInput true "Visit data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits [post]
func (h *ClinicalHandler) CreateVisit(c *fiber.Ctx) error {
	var input services.CreateVisitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	visit, err := h.clinicalService.CreateVisit(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to create visit")
	}

	return response.Created(c, "Visit created successfully", visit)
}

// ListVisits lists visits
// @Summary List visits
// @Description List visits filtered by patient and stage
// @Tags Clinical
// @Produce json
// @Security BearerAuth
// @Param patient_id query int false "Patient filter"
// @Param stage query string false "Stage filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /clinical/visits [get]
func (h *ClinicalHandler) ListVisits(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	patientID, _ := strconv.Atoi(c.Query("patient_id", "0"))
	filter := repositories.VisitFilter{
		PatientID: uint(patientID),
		Stage:     c.Query("stage"),
	}

	visits, total, err := h.clinicalService.ListVisits(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStage) {
			return response.BadRequest(c, "Invalid stage")
		}
		return response.InternalServerError(c, "Failed to list visits")
	}

	return response.Success(c, "", pagination.NewResponse(visits, params, total))
}

// GetVisit returns one visit with its clinical records
// @Summary Get visit
// @Description Get a visit with vital signs, notes and prescriptions
// @Tags Clinical
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits/{id} [get]
func (h *ClinicalHandler) GetVisit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid visit ID")
	}

	detail, err := h.clinicalService.GetVisit(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			return response.NotFound(c, "Visit not found")
		}
		return response.InternalServerError(c, "Failed to load visit")
	}

	return response.Success(c, "", detail)
}

// UpdateStage moves a visit to a new workflow stage
// @Summary Update visit stage
// @Description Move a visit to another workflow stage
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visit ID"
// @Param body body UpdateStageRequest true "New stage"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits/{id}/update-stage [put]
func (h *ClinicalHandler) UpdateStage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid visit ID")
	}

	var req UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err = h.clinicalService.UpdateVisitStage(c.Context(), uint(id), req.NewStage, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStage):
			return response.BadRequest(c, "Invalid stage")
		case errors.Is(err, services.ErrVisitNotFound):
			return response.NotFound(c, "Visit not found")
		default:
			return response.InternalServerError(c, "Failed to update stage")
		}
	}

	return response.Success(c, "Visit stage updated to "+req.NewStage, nil)
}

// RecordVitals records a vital signs reading
// @Summary Record vital signs
// @Description Record a vitals reading against a visit
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visit ID"
// @Param body body services.RecordVitalsInput true "Vital signs"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits/{id}/vitals [post]
func (h *ClinicalHandler) RecordVitals(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid visit ID")
	}

	var input services.RecordVitalsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vitals, err := h.clinicalService.RecordVitalSigns(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			return response.NotFound(c, "Visit not found")
		}
		return response.InternalServerError(c, "Failed to record vital signs")
	}

	return response.Created(c, "Vital signs recorded successfully", vitals)
}

// AddNote attaches a clinical note to a visit
// @Summary Add clinical note
// @Description Attach a clinical note to a visit
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visit ID"
// @Param body body services.AddNoteInput true "Note"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits/{id}/notes [post]
func (h *ClinicalHandler) AddNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid visit ID")
	}

	var input services.AddNoteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	note, err := h.clinicalService.AddNote(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			return response.NotFound(c, "Visit not found")
		}
		return response.InternalServerError(c, "Failed to add note")
	}

	return response.Created(c, "Clinical note added successfully", note)
}

// AddPrescription attaches a prescription to a visit
// @Summary Add prescription
// @Description Attach a prescription to a visit
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Visit ID"
// @Param body body services.AddPrescriptionInput true "Prescription"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/visits/{id}/prescriptions [post]
func (h *ClinicalHandler) AddPrescription(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid visit ID")
	}

	var input services.AddPrescriptionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	prescription, err := h.clinicalService.AddPrescription(c.Context(), uint(id), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			return response.NotFound(c, "Visit not found")
		}
		return response.InternalServerError(c, "Failed to add prescription")
	}

	return response.Created(c, "Prescription added successfully", prescription)
}

// CreateReferral opens a referral
// @Summary Create referral
// @Description Open a pending referral for a patient
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReferralInput true "Referral data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/referrals [post]
func (h *ClinicalHandler) CreateReferral(c *fiber.Ctx) error {
	var input services.CreateReferralInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	referral, err := h.clinicalService.CreateReferral(c.Context(), &input, middleware.UserID(c), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to create referral")
	}

	return response.Created(c, "Referral created successfully", referral)
}

// ListReferrals lists referrals
// @Summary List referrals
// @Description List referrals with optional status filter
// @Tags Clinical
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /clinical/referrals [get]
func (h *ClinicalHandler) ListReferrals(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	referrals, total, err := h.clinicalService.ListReferrals(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReferralStatus) {
			return response.BadRequest(c, "Invalid referral status")
		}
		return response.InternalServerError(c, "Failed to list referrals")
	}

	return response.Success(c, "", pagination.NewResponse(referrals, params, total))
}

// UpdateReferralStatus moves a referral to a new status
// @Summary Update referral status
// @Description Approve, reject or complete a referral
// @Tags Clinical
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Referral ID"
// @Param body body UpdateReferralStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinical/referrals/{id}/status [put]
func (h *ClinicalHandler) UpdateReferralStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid referral ID")
	}

	var req UpdateReferralStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err = h.clinicalService.UpdateReferralStatus(c.Context(), uint(id), req.Status, middleware.UserID(c), requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReferralStatus):
			return response.BadRequest(c, "Invalid referral status")
		case errors.Is(err, services.ErrReferralNotFound):
			return response.NotFound(c, "Referral not found")
		default:
			return response.InternalServerError(c, "Failed to update referral")
		}
	}

	return response.Success(c, "Referral status updated successfully", nil)
}
