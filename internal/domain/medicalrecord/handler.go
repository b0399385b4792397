package medicalrecord

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
	"medappointment/internal/pkg/formdata"
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

// CreateRecord handles POST /api/v1/medical-records
func (h *Handler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	rec, err := h.service.CreateRecord(c.Request.Context(), actorOf(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

// GetRecord handles GET /api/v1/medical-records/:id
func (h *Handler) GetRecord(c *gin.Context) {
	rec, err := h.service.GetRecord(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// GetByPatient handles GET /api/v1/medical-records/patient/:patientId
func (h *Handler) GetByPatient(c *gin.Context) {
	records, err := h.service.ListByPatient(c.Request.Context(), actorOf(c), c.Param("patientId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// UpdateRecord handles PUT /api/v1/medical-records/:id
func (h *Handler) UpdateRecord(c *gin.Context) {
	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	rec, err := h.service.UpdateRecord(c.Request.Context(), actorOf(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /api/v1/medical-records/:id
func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.service.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadDocument handles POST /api/v1/medical-records/:id/documents.
// The body was already parsed and stored by formdata.Middleware.
func (h *Handler) UploadDocument(c *gin.Context) {
	res, ok := formdata.FromContext(c)
	if !ok || len(res.Files) == 0 {
		response.CustomError(c, http.StatusBadRequest, "NO_FILE_PROVIDED", "No file uploaded")
		return
	}

	docs, err := h.service.AddDocuments(c.Request.Context(), actorOf(c), c.Param("id"), res.Files)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"document":  docs[len(docs)-1],
		"documents": docs,
	})
}

// ListDocuments handles GET /api/v1/medical-records/:id/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.service.ListDocuments(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

// DownloadDocument handles GET /api/v1/medical-records/:id/documents/:documentId
func (h *Handler) DownloadDocument(c *gin.Context) {
	doc, path, err := h.service.OpenDocument(c.Request.Context(), actorOf(c), c.Param("id"), c.Param("documentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		response.CustomError(c, http.StatusNotFound, "DOCUMENT_NOT_FOUND", "Document file is missing")
		return
	}
	c.FileAttachment(path, doc.FileName)
}

// DeleteDocument handles DELETE /api/v1/medical-records/:id/documents/:documentId
func (h *Handler) DeleteDocument(c *gin.Context) {
	err := h.service.DeleteDocument(c.Request.Context(), actorOf(c), c.Param("id"), c.Param("documentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		response.CustomError(c, http.StatusNotFound, "MEDICAL_RECORD_NOT_FOUND", "Medical record not found")
	case errors.Is(err, ErrDocumentNotFound):
		response.CustomError(c, http.StatusNotFound, "DOCUMENT_NOT_FOUND", "Document not found")
	case errors.Is(err, ErrInvalidPatient):
		response.CustomError(c, http.StatusBadRequest, "INVALID_PATIENT", "Patient not found or not a patient account")
	case errors.Is(err, ErrInvalidDoctor):
		response.CustomError(c, http.StatusBadRequest, "INVALID_DOCTOR", "Doctor not found or not a doctor account")
	case errors.Is(err, ErrForbidden):
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}
