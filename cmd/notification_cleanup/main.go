package main

import (
	"context"
	"log"

	"medappointment/internal/config"
	"medappointment/internal/database"
	"medappointment/internal/domain/notification"
)

// One-shot purge of expired and out-of-retention notifications, for cron
// setups that do not rely on the API's background schedule.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cleanup := notification.NewCleanupService(notification.NewNotificationRepository(db))
	cleanupCfg := notification.DefaultCleanupConfig()
	cleanupCfg.RetentionDays = cfg.NotificationRetentionDays
	err = cleanup.RunCleanup(context.Background(), cleanupCfg)
	if err != nil {
		log.Fatalf("notification cleanup failed: %v", err)
	}
}
