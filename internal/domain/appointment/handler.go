package appointment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
	"medappointment/internal/pkg/response"
	"medappointment/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func actorOf(c *gin.Context) Actor {
	userID, role := middleware.CurrentUser(c)
	return Actor{UserID: userID, Role: role}
}

// statusQuery reads ?status=; ok is false after an error response was written.
func statusQuery(c *gin.Context) (Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	st, ok := ParseStatus(raw)
	if !ok {
		response.CustomError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown appointment status")
		return "", false
	}
	return st, true
}

// CreateAppointment handles POST /api/v1/appointments
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	a, err := h.service.CreateAppointment(c.Request.Context(), actorOf(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// GetMyAppointments handles GET /api/v1/appointments/my-appointments
func (h *Handler) GetMyAppointments(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	list, err := h.service.ListMine(c.Request.Context(), actorOf(c), status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

// GetAppointment handles GET /api/v1/appointments/:id
func (h *Handler) GetAppointment(c *gin.Context) {
	a, err := h.service.GetAppointment(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// GetByDoctor handles GET /api/v1/appointments/doctor/:doctorId
func (h *Handler) GetByDoctor(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	list, err := h.service.ListByDoctor(c.Request.Context(), actorOf(c), c.Param("doctorId"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

// GetByPatient handles GET /api/v1/appointments/patient/:patientId
func (h *Handler) GetByPatient(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	list, err := h.service.ListByPatient(c.Request.Context(), c.Param("patientId"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

// GetAll handles GET /api/v1/appointments
func (h *Handler) GetAll(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	list, err := h.service.ListAll(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

// UpdateAppointment handles PUT /api/v1/appointments/:id
func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	a, err := h.service.UpdateAppointment(c.Request.Context(), actorOf(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// CancelAppointment handles PATCH /api/v1/appointments/:id/cancel
func (h *Handler) CancelAppointment(c *gin.Context) {
	a, err := h.service.CancelAppointment(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// DeleteAppointment handles DELETE /api/v1/appointments/:id
func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.service.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		response.CustomError(c, http.StatusNotFound, "APPOINTMENT_NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrInvalidDoctor):
		response.CustomError(c, http.StatusBadRequest, "INVALID_DOCTOR", "Doctor not found or not a doctor account")
	case errors.Is(err, ErrInvalidPatient):
		response.CustomError(c, http.StatusBadRequest, "INVALID_PATIENT", "Patient not found or not a patient account")
	case errors.Is(err, ErrInvalidDate):
		response.CustomError(c, http.StatusBadRequest, "INVALID_APPOINTMENT_DATE", "Appointment date must be in the future")
	case errors.Is(err, ErrInvalidDuration):
		response.CustomError(c, http.StatusBadRequest, "INVALID_DURATION", "Duration must be between 15 and 180 minutes")
	case errors.Is(err, ErrInvalidStatus):
		response.CustomError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown appointment status")
	case errors.Is(err, ErrTimeSlotNotAvailable):
		response.CustomError(c, http.StatusConflict, "TIME_SLOT_NOT_AVAILABLE", "This time slot is not available")
	case errors.Is(err, ErrAlreadyFinished):
		response.CustomError(c, http.StatusConflict, "APPOINTMENT_FINISHED", "Appointment is already finished")
	case errors.Is(err, ErrForbidden):
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}
