package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
	"medappointment/internal/pkg/response"
	"medappointment/internal/pkg/validator"
)

// DoctorHandler handles doctor profile HTTP requests
type DoctorHandler struct {
	service *Service
}

func NewDoctorHandler(service *Service) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// ListDoctors handles GET /api/v1/doctors?specialty=
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context(), Specialty(c.Query("specialty")))
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doctors": doctors})
}

// GetDoctor handles GET /api/v1/doctors/:userId
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	p, err := h.service.GetDoctorProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// GetMyProfile handles GET /api/v1/doctors/profile/me
func (h *DoctorHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.GetDoctorProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// CreateProfile handles POST /api/v1/doctors/profile
func (h *DoctorHandler) CreateProfile(c *gin.Context) {
	var req CreateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.CreateDoctorProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// UpdateProfile handles PUT /api/v1/doctors/profile
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	var req UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.service.UpdateDoctorProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}
