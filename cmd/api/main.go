package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"medappointment/internal/config"
	"medappointment/internal/database"
	"medappointment/internal/domain/notification"
	"medappointment/internal/pkg/formdata"
	jwtsvc "medappointment/internal/pkg/jwt"
	"medappointment/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		log.Fatal(err)
	}

	if err := formdata.EnsureDir(cfg.MedicalDocumentsDir()); err != nil {
		log.Fatal(err)
	}
	parser, err := formdata.NewParser(formdata.Config{
		Dir:       cfg.MedicalDocumentsDir(),
		MultiFile: cfg.UploadMultiFile,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup := notification.NewCleanupService(notification.NewNotificationRepository(db))
	cleanupCfg := notification.DefaultCleanupConfig()
	cleanupCfg.RetentionDays = cfg.NotificationRetentionDays
	cleanupCfg.CleanupInterval = cfg.NotificationCleanupInterval
	cleanup.ScheduleCleanup(ctx, cleanupCfg)

	r := server.NewRouter(server.Deps{
		DB:          db,
		JWT:         jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL),
		Hub:         notification.NewHub(),
		Parser:      parser,
		UploadRoot:  cfg.UploadRoot,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	log.Printf("MedAppointment API env=%s uploads=%s", cfg.AppEnv, cfg.MedicalDocumentsDir())
	if err := server.Run(ctx, ":"+cfg.Port, r, 10*time.Second); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}
