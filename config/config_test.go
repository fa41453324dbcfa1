package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "doctor_form_session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, DraftStoreMemory, cfg.Draft.Store)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Collaborator.Timeout)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\n" +
		"SESSION_SECRET=s3cret\n" +
		"SESSION_TTL=2h\n" +
		"DRAFT_STORE=redis\n" +
		"REDIS_DB=3\n" +
		"AUDIT_ENABLED=true\n" +
		"UPLOAD_ENDPOINT=https://files.example/api/upload\n" +
		"COLLABORATOR_TIMEOUT=15s\n" +
		"CORS_ALLOWED_ORIGINS=https://admin.example, https://ops.example,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, DraftStoreRedis, cfg.Draft.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "https://files.example/api/upload", cfg.Collaborator.UploadEndpoint)
	assert.Equal(t, 15*time.Second, cfg.Collaborator.Timeout)
	assert.Equal(t, []string{"https://admin.example", "https://ops.example"}, cfg.App.AllowedOrigins)
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfigBadDurations(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("COLLABORATOR_TIMEOUT", "soon")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Duration(0), cfg.Collaborator.Timeout)
}
