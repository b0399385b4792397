package appointment

import (
	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
)

// RegisterRoutes mounts appointment routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	appointments := protected.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/my-appointments", h.GetMyAppointments)
		appointments.GET("/doctor/:doctorId", h.GetByDoctor)
		appointments.GET("/patient/:patientId", middleware.RequireRole("admin", "doctor"), h.GetByPatient)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.PATCH("/:id/cancel", h.CancelAppointment)

		appointments.GET("", middleware.AdminOnly(), h.GetAll)
		appointments.DELETE("/:id", middleware.AdminOnly(), h.DeleteAppointment)
	}
}
