package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test in an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_MAX_CONNS", "REDIS_URL", "ADMIN_SECRET", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_IP", "WEBHOOK_URL", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED", "ADMIN_LOCKOUT_ATTEMPTS", "ADMIN_LOCKOUT_COOLDOWN", "CONFIG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "300-M", cfg.RateLimit.RatePerIP)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.Admin.LockoutAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Admin.LockoutCooldown)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/idolbase")
	t.Setenv("DATABASE_MAX_CONNS", "25")
	t.Setenv("ADMIN_SECRET", "key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, ,https://example.com")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SECURE_DEVELOPMENT", "true")
	t.Setenv("ADMIN_LOCKOUT_ATTEMPTS", "0")
	t.Setenv("ADMIN_LOCKOUT_COOLDOWN", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/idolbase", cfg.Database.URL)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, "key", cfg.Admin.Secret)
	assert.Equal(t, []string{"https://admin.example.com", "https://example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Secure.IsDevelopment)
	assert.Equal(t, 0, cfg.Admin.LockoutAttempts)
	assert.Equal(t, 90*time.Second, cfg.Admin.LockoutCooldown)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WEBHOOK_URL=https://hooks.example.com\nWEBHOOK_SECRET=abc\n"), 0o600))
	t.Setenv("WEBHOOK_URL", "")
	os.Unsetenv("WEBHOOK_URL")
	t.Setenv("WEBHOOK_SECRET", "")
	os.Unsetenv("WEBHOOK_SECRET")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com", cfg.Webhook.URL)
	assert.Equal(t, "abc", cfg.Webhook.Secret)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	assert.Error(t, err)
}
