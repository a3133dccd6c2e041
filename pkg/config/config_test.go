package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 75.0, cfg.Grading.DefaultTarget)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GRADING_DEFAULT_TARGET", "80")
	t.Setenv("ENABLE_CACHE", "true")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("ENABLE_NOTIFICATIONS", "true")
	t.Setenv("NOTIFY_WEBHOOK_URL", "http://hooks.local/grades")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.Grading.DefaultTarget)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL, "invalid durations fall back")
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDisablesNotificationsWithoutURL(t *testing.T) {
	t.Setenv("ENABLE_NOTIFICATIONS", "true")
	t.Setenv("GRADING_DEFAULT_TARGET", "150")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, 75.0, cfg.Grading.DefaultTarget)
}
