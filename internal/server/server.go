package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"medappointment/internal/domain/appointment"
	"medappointment/internal/domain/auth"
	"medappointment/internal/domain/medicalrecord"
	"medappointment/internal/domain/notification"
	"medappointment/internal/domain/profile"
	"medappointment/internal/middleware"
	"medappointment/internal/pkg/formdata"
	"medappointment/internal/pkg/jwt"
	"medappointment/internal/pkg/response"
)

// Deps are the shared components the router is built from.
type Deps struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Hub         *notification.Hub
	Parser      *formdata.Parser
	UploadRoot  string
	CORSOrigins []string
}

// Models lists every persisted entity.
func Models() []any {
	return []any{
		&auth.User{},
		&profile.DoctorProfile{},
		&profile.PatientProfile{},
		&appointment.Appointment{},
		&medicalrecord.Record{},
		&medicalrecord.Document{},
		&notification.Notification{},
	}
}

func NewRouter(d Deps) *gin.Engine {
	if d.Hub == nil {
		d.Hub = notification.NewHub()
	}
	userRepo := auth.NewUserRepository(d.DB)
	notificationRepo := notification.NewNotificationRepository(d.DB)

	authService := auth.NewService(userRepo, d.JWT)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(profile.NewDoctorRepository(d.DB), profile.NewPatientRepository(d.DB), userRepo)
	doctorHandler := profile.NewDoctorHandler(profileService)
	patientHandler := profile.NewPatientHandler(profileService)

	notificationService := notification.NewService(notificationRepo, d.Hub)
	notificationHandler := notification.NewHandler(notificationService)
	wsHandler := notification.NewWSHandler(d.Hub, d.JWT)

	appointmentService := appointment.NewService(appointment.NewRepository(d.DB), userRepo, notificationService)
	appointmentHandler := appointment.NewHandler(appointmentService)

	recordService := medicalrecord.NewService(medicalrecord.NewRepository(d.DB), userRepo, notificationService, d.UploadRoot)
	recordHandler := medicalrecord.NewHandler(recordService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health", health(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", d.UploadRoot)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		notification.RegisterWSRoutes(v1, wsHandler)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profile.RegisterRoutes(protected, doctorHandler, patientHandler)
			appointment.RegisterRoutes(protected, appointmentHandler)
			medicalrecord.RegisterRoutes(protected, recordHandler, d.Parser)
			notification.RegisterRoutes(protected, notificationHandler)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, gin.H{
			"status": status,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server_listening addr=%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("server_shutdown timeout=%s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
