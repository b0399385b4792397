package auth

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

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.CustomError(c, http.StatusConflict, "EMAIL_ALREADY_EXISTS", "Email is already registered")
		case errors.Is(err, ErrInvalidRole):
			response.CustomError(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be doctor or patient")
		default:
			response.CustomError(c, http.StatusInternalServerError, "REGISTER_FAILED", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.CustomError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.CustomError(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			response.CustomError(c, http.StatusInternalServerError, "LOGIN_FAILED", err)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetMe handles GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.userError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// ListUsers handles GET /api/v1/users?role=
func (h *Handler) ListUsers(c *gin.Context) {
	role := UserRole(c.Query("role"))
	switch role {
	case "", RoleAdmin, RoleDoctor, RolePatient:
	default:
		response.CustomError(c, http.StatusBadRequest, "INVALID_ROLE", "Unknown role filter")
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), role)
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser handles GET /api/v1/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.userError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// UpdateUser handles PATCH /api/v1/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.userError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *Handler) userError(c *gin.Context, err error) {
	if errors.Is(err, ErrUserNotFound) {
		response.CustomError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}
	response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
}
