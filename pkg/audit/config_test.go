package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 90, cfg.RetentionDays)
	assert.True(t, cfg.LogDenied)
	assert.True(t, cfg.Enabled)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PORTAL_AUDIT_RETENTION_DAYS", "30")
	t.Setenv("PORTAL_AUDIT_LOG_DENIED", "false")
	t.Setenv("PORTAL_AUDIT_ENABLED", "false")

	cfg := ConfigFromEnv()
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.False(t, cfg.LogDenied)
	assert.False(t, cfg.Enabled)
}

func TestConfigFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("PORTAL_AUDIT_RETENTION_DAYS", "-5")

	cfg := ConfigFromEnv()
	assert.Equal(t, 90, cfg.RetentionDays)
}
