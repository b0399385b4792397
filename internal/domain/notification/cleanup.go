package notification

import (
	"context"
	"log"
	"time"
)

// CleanupService handles background cleanup tasks for notifications
type CleanupService struct {
	repo Repository
}

func NewCleanupService(repo Repository) *CleanupService {
	return &CleanupService{repo: repo}
}

// CleanupConfig holds configuration for cleanup tasks
type CleanupConfig struct {
	RetentionDays   int           // read or not, notifications older than this are dropped
	CleanupInterval time.Duration // how often to run
	Enabled         bool
}

func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		RetentionDays:   90,
		CleanupInterval: 24 * time.Hour,
		Enabled:         true,
	}
}

// RunCleanup removes expired notifications and those past retention.
func (c *CleanupService) RunCleanup(ctx context.Context, cfg CleanupConfig) error {
	startTime := time.Now()

	expired, err := c.repo.DeleteExpired(ctx, startTime)
	if err != nil {
		log.Printf("notification_cleanup_failed step=expired error=%q", err.Error())
		return err
	}

	var old int64
	if cfg.RetentionDays > 0 {
		old, err = c.repo.DeleteOlderThan(ctx, time.Duration(cfg.RetentionDays)*24*time.Hour)
		if err != nil {
			log.Printf("notification_cleanup_failed step=retention error=%q", err.Error())
			return err
		}
	}

	log.Printf("notification_cleanup expired=%d old=%d duration=%s", expired, old, time.Since(startTime))
	return nil
}

// ScheduleCleanup runs RunCleanup every interval until ctx is done.
func (c *CleanupService) ScheduleCleanup(ctx context.Context, cfg CleanupConfig) {
	if !cfg.Enabled || cfg.CleanupInterval <= 0 {
		log.Println("Automatic notification cleanup is disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_ = c.RunCleanup(ctx, cfg)
			case <-ctx.Done():
				log.Println("Scheduled notification cleanup stopped")
				return
			}
		}
	}()

	log.Printf("Scheduled notification cleanup every %v", cfg.CleanupInterval)
}
