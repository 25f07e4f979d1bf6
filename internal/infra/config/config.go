package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultControlAddr  = "127.0.0.1:47821"
	DefaultSettingsName = "config.json"
	LockName            = "queuebot.lock"
)

type Config struct {
	SettingsPath string // QUEUEBOT_CONFIG, default config.json junto al ejecutable
	InstallDir   string // LCU_INSTALL_DIR, vacío = default por OS
	ControlAddr  string // opcional, default 127.0.0.1:47821
	ControlToken string
	IconPath     string
	ToastAppID   string // QUEUEBOT_TOAST_APP_ID, vacío = el de PowerShell

	LogLevel  string
	LogFile   string
	SentryDSN string
	Env       string
}

// Load lee el entorno; godotenv.Load() corre antes en main.
func Load() Config {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		SettingsPath: get("QUEUEBOT_CONFIG", ""),
		InstallDir:   get("LCU_INSTALL_DIR", ""),
		ControlAddr:  get("QUEUEBOT_CONTROL_ADDR", DefaultControlAddr),
		ControlToken: get("QUEUEBOT_CONTROL_TOKEN", ""),
		IconPath:     get("QUEUEBOT_ICON", ""),
		ToastAppID:   get("QUEUEBOT_TOAST_APP_ID", ""),
		LogLevel:     get("QUEUEBOT_LOG_LEVEL", "info"),
		LogFile:      get("QUEUEBOT_LOG_FILE", ""),
		SentryDSN:    get("SENTRY_DSN", ""),
		Env:          get("QUEUEBOT_ENV", "production"),
	}
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = filepath.Join(baseDir(), DefaultSettingsName)
	}
	return cfg
}

// LockPath vive al lado del archivo de settings.
func (c Config) LockPath() string {
	return filepath.Join(filepath.Dir(c.SettingsPath), LockName)
}

func baseDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
