package notification

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// List handles GET /api/v1/notifications?only_unread=&limit=&since=
func (h *Handler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var f ListFilter
	f.OnlyUnread = c.Query("only_unread") == "true"
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := c.Query("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.Since = &t
		}
	}

	res, err := h.service.List(c.Request.Context(), userID, f)
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Create handles POST /api/v1/notifications
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	userID, role := middleware.CurrentUser(c)
	if role == "patient" && req.UserID != userID {
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Patients can only notify themselves")
		return
	}

	n, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusCreated, n)
}

// MarkAsRead handles PATCH /api/v1/notifications/:id/read
func (h *Handler) MarkAsRead(c *gin.Context) {
	var req MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}
	read := req.IsRead == nil || *req.IsRead

	userID, _ := middleware.CurrentUser(c)
	n, err := h.service.MarkAsRead(c.Request.Context(), userID, c.Param("id"), read)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, n)
}

// MarkAllAsRead handles POST /api/v1/notifications/mark-all-read
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	updated, err := h.service.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/v1/notifications?scope=read|all
func (h *Handler) Clear(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	deleted, err := h.service.Clear(c.Request.Context(), userID, ClearScope(c.Query("scope")))
	if err != nil {
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		response.CustomError(c, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "Notification not found")
	case errors.Is(err, ErrForbidden):
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}
