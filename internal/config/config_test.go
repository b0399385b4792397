package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "NODE_ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "JWT_ACCESS_TTL", "UPLOAD_ROOT", "UPLOAD_MULTI_FILE", "CORS_ALLOWED_ORIGINS", "NOTIFICATION_RETENTION_DAYS", "NOTIFICATION_CLEANUP_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTTL)
	assert.False(t, cfg.UploadMultiFile)
	assert.True(t, filepath.IsAbs(cfg.UploadRoot))
	assert.Equal(t, filepath.Join(cfg.UploadRoot, "medical-documents"), cfg.MedicalDocumentsDir())
	assert.Equal(t, 90, cfg.NotificationRetentionDays)
	assert.Equal(t, 24*time.Hour, cfg.NotificationCleanupInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	root := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("UPLOAD_ROOT", root)
	t.Setenv("UPLOAD_MULTI_FILE", "yes")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, root, cfg.UploadRoot)
	assert.True(t, cfg.UploadMultiFile)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_ACCESS_TTL", "forever")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}

func TestLoad_NegativeRetention(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "NOTIFICATION_RETENTION_DAYS")
}
