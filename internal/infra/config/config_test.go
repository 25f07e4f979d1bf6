package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"QUEUEBOT_CONFIG", "LCU_INSTALL_DIR", "QUEUEBOT_CONTROL_ADDR", "QUEUEBOT_CONTROL_TOKEN",
		"QUEUEBOT_ICON", "QUEUEBOT_TOAST_APP_ID", "QUEUEBOT_LOG_LEVEL", "QUEUEBOT_LOG_FILE", "SENTRY_DSN", "QUEUEBOT_ENV",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultControlAddr, cfg.ControlAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, DefaultSettingsName, filepath.Base(cfg.SettingsPath))
	assert.Empty(t, cfg.InstallDir)
	assert.Empty(t, cfg.SentryDSN)
	assert.Empty(t, cfg.ToastAppID)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUEUEBOT_CONFIG", filepath.Join(dir, "bot.yaml"))
	t.Setenv("LCU_INSTALL_DIR", "/games/lol")
	t.Setenv("QUEUEBOT_CONTROL_ADDR", " 127.0.0.1:9000 ")
	t.Setenv("QUEUEBOT_LOG_LEVEL", "debug")
	t.Setenv("QUEUEBOT_TOAST_APP_ID", "Queuebot.Desktop")

	cfg := Load()
	assert.Equal(t, filepath.Join(dir, "bot.yaml"), cfg.SettingsPath)
	assert.Equal(t, "/games/lol", cfg.InstallDir)
	assert.Equal(t, "127.0.0.1:9000", cfg.ControlAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Queuebot.Desktop", cfg.ToastAppID)
	assert.Equal(t, filepath.Join(dir, LockName), cfg.LockPath())
}
