package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Raswanth-RM/Transaction-Monitoring/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "30s", cfg.Server.ReadTimeout)
	assert.Equal(t, "60s", cfg.Server.WriteTimeout)
	assert.Equal(t, int64(10*1024*1024), cfg.Server.MaxUploadSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "#fraud-alerts", cfg.Alerts.Slack.Channel)
	assert.False(t, cfg.Alerts.Slack.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  listen: ":9090"
  mode: debug
storage:
  path: /tmp/test.db
rules:
  path: /etc/txmon/thresholds.yaml
logging:
  level: debug
alerts:
  webhook:
    enabled: true
    url: https://example.com/hook
`)
	err := os.WriteFile(cfgPath, data, 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	assert.Equal(t, "/etc/txmon/thresholds.yaml", cfg.Rules.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Alerts.Webhook.Enabled)
	assert.Equal(t, "https://example.com/hook", cfg.Alerts.Webhook.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TXM_LOGGING_LEVEL", "error")
	t.Setenv("TXM_SERVER_LISTEN", ":7070")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, ":7070", cfg.Server.Listen)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(cfgPath, []byte("invalid: [yaml"), 0o644)
	require.NoError(t, err)

	_, err = config.Load(cfgPath)
	assert.Error(t, err)
}
