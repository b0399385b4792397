package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
	"medappointment/internal/pkg/response"
	"medappointment/internal/pkg/validator"
)

// PatientHandler handles patient profile HTTP requests
type PatientHandler struct {
	service *Service
}

func NewPatientHandler(service *Service) *PatientHandler {
	return &PatientHandler{service: service}
}

// ListPatients handles GET /api/v1/patients
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"patients": patients})
}

// GetPatient handles GET /api/v1/patients/:userId
func (h *PatientHandler) GetPatient(c *gin.Context) {
	p, err := h.service.GetPatientProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// GetMyProfile handles GET /api/v1/patients/profile/me
func (h *PatientHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.GetPatientProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// CreateProfile handles POST /api/v1/patients/profile
func (h *PatientHandler) CreateProfile(c *gin.Context) {
	req, ok := bindPatient(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.CreatePatientProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// UpdateProfile handles PUT /api/v1/patients/profile
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	req, ok := bindPatient(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.UpdatePatientProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func bindPatient(c *gin.Context) (PatientProfileRequest, bool) {
	var req PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return req, false
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return req, false
	}
	return req, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		response.CustomError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	case errors.Is(err, ErrProfileAlreadyExists):
		response.CustomError(c, http.StatusConflict, "PROFILE_ALREADY_EXISTS", "Profile already exists")
	case errors.Is(err, ErrLicenseNumberTaken):
		response.CustomError(c, http.StatusConflict, "LICENSE_NUMBER_ALREADY_EXISTS", "License number is already registered")
	case errors.Is(err, ErrInvalidAvailability):
		response.CustomError(c, http.StatusBadRequest, "INVALID_AVAILABILITY", "available_from must be before available_to")
	default:
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}
