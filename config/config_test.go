package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  dsn: "host=localhost user=app dbname=rectiflex"
auth:
  jwt_secret: "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, 5*time.Minute, cfg.Reminder.Interval)

	// Double escalation defaults on when the key is absent.
	assert.True(t, cfg.EscalationNotifiesTwice())
}

func TestLoad_EscalationToggle(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "secret"
notifications:
  escalation_notifies_twice: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.EscalationNotifiesTwice())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
