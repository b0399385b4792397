package medicalrecord

import (
	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
	"medappointment/internal/pkg/formdata"
)

// RegisterRoutes mounts record routes on an authenticated group. Uploads go
// through parser before the handler runs.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler, parser *formdata.Parser) {
	records := protected.Group("/medical-records")
	{
		records.POST("", middleware.RequireRole("admin", "doctor"), h.CreateRecord)
		records.GET("/patient/:patientId", h.GetByPatient)
		records.GET("/:id", h.GetRecord)
		records.PUT("/:id", middleware.RequireRole("admin", "doctor"), h.UpdateRecord)
		records.DELETE("/:id", middleware.AdminOnly(), h.DeleteRecord)

		records.GET("/:id/documents", h.ListDocuments)
		records.POST("/:id/documents", formdata.Middleware(parser), h.UploadDocument)
		records.GET("/:id/documents/:documentId", h.DownloadDocument)
		records.DELETE("/:id/documents/:documentId", h.DeleteDocument)
	}
}
