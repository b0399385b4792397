package profile

import (
	"github.com/gin-gonic/gin"

	"medappointment/internal/middleware"
)

// RegisterRoutes registers doctor and patient profile routes.
// protected must already run JWTAuth.
func RegisterRoutes(protected *gin.RouterGroup, doctorHandler *DoctorHandler, patientHandler *PatientHandler) {
	doctors := protected.Group("/doctors")
	{
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.GET("/profile/me", middleware.RequireRole("doctor"), doctorHandler.GetMyProfile)
		doctors.POST("/profile", middleware.RequireRole("doctor"), doctorHandler.CreateProfile)
		doctors.PUT("/profile", middleware.RequireRole("doctor"), doctorHandler.UpdateProfile)
		doctors.GET("/:userId", doctorHandler.GetDoctor)
	}

	patients := protected.Group("/patients")
	{
		patients.GET("", middleware.RequireRole("admin", "doctor"), patientHandler.ListPatients)
		patients.GET("/profile/me", middleware.RequireRole("patient"), patientHandler.GetMyProfile)
		patients.POST("/profile", middleware.RequireRole("patient"), patientHandler.CreateProfile)
		patients.PUT("/profile", middleware.RequireRole("patient"), patientHandler.UpdateProfile)
		patients.GET("/:userId", middleware.RequireRole("admin", "doctor"), patientHandler.GetPatient)
	}
}
